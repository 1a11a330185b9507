package stats_test

import (
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/stats"
)

// ExamplePearson correlates a feature with an error that grows linearly
// with it.
func ExamplePearson() {
	r, err := stats.Pearson([]float64{1, 2, 3, 4}, []float64{0.5, 1.5, 2.5, 3.5})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.3f\n", r)
	// Output: 1.000
}
