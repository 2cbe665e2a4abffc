// Command criteriamd merges the evaluation-criteria HTML pages into a
// single Markdown document.
package main

import "github.com/gaurav-prasanna/criteriamd/cmd"

func main() {
	cmd.Execute()
}
