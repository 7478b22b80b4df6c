package design_test

import (
	"fmt"

	"github.com/matzehuels/plotgrid/pkg/design"
)

func ExampleParse() {
	spec, err := design.Parse(`
		AA#
		BCC
	`)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(spec.NumItems(), "items in", spec.NRow(), "x", spec.NCol())
	fmt.Println(spec)
	// Output:
	// 3 items in 2 x 3
	// AA#
	// BCC
}

func ExampleSpec_Resolve() {
	// Two columns filled column by column; the last cell stays empty
	grid, _ := design.Grid(2, 0, design.ByColumn())
	spec, err := grid.Resolve(5)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(grid)
	fmt.Println(spec)
	// Output:
	// grid(ncol=2, nrow=0, bycol)
	// AD
	// BE
	// C#
}

func ExampleDefault() {
	for _, n := range []int{3, 5} {
		spec, _ := design.Default(n)
		fmt.Printf("%d children:\n%s\n", n, spec)
	}
	// Output:
	// 3 children:
	// A
	// B
	// C
	// 5 children:
	// AB
	// CD
	// E#
}
