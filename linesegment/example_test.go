package linesegment_test

import (
	"fmt"

	"github.com/mikenye/borderlines/linesegment"
	"github.com/mikenye/borderlines/point"
)

func ExampleNew() {
	seg := linesegment.New(0, 0, 10, 10)
	fmt.Println(seg)

	// Output:
	// (10,10)(0,0)
}

func ExampleLineSegment_Length() {
	seg := linesegment.New(0, 0, 3, 4)
	fmt.Println(seg.Length())

	// Output:
	// 5
}

func ExampleLineSegment_Center() {
	seg := linesegment.New(0, 0, 10, 0)
	fmt.Println(seg.Center())

	// Output:
	// (5.000000,0.000000)
}

func ExampleLineSegment_ContainsPoint() {
	seg := linesegment.New(0, 0, 10, 0)
	fmt.Println(seg.ContainsPoint(point.New(5, 0)))
	fmt.Println(seg.ContainsPoint(point.New(5, 1)))

	// Output:
	// true
	// false
}

func ExampleLineSegment_Intersects() {
	a := linesegment.New(0, 0, 10, 10)
	b := linesegment.New(0, 10, 10, 0)
	c := linesegment.New(20, 20, 30, 30)
	fmt.Println(a.Intersects(b))
	fmt.Println(a.Intersects(c))

	// Output:
	// true
	// false
}

func ExampleLineSegment_Translate() {
	seg := linesegment.New(0, 0, 10, 10)
	moved := seg.Translate(point.New(5, 5))
	fmt.Println(moved)

	// Output:
	// (15,15)(5,5)
}
