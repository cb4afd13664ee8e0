package main

import (
	"fmt"
	"os"

	"github.com/rfielding/modalmu/models"
	"github.com/rfielding/modalmu/process"
)

func main() {
	m := models.Purple{}
	g, err := process.Expand(m.System())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error expanding model:", err)
		os.Exit(1)
	}

	fmt.Println("PURPLE model expanded to", g.Len(), "states.")
	fmt.Println("Initial process:", m.System().Initial())

	fmt.Println()
	fmt.Println("Mermaid stateDiagram-v2:")
	fmt.Println("```mermaid")
	if err := g.WriteMermaid(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error writing Mermaid:", err)
	}
	fmt.Println("```")
}
