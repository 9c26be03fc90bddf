// Package main is the entry point for the mlbmetrics CLI tool, which
// fetches Statcast data and ranks batters by rolling wOBA/xwOBA
// differential.
package main

import "github.com/pable/go-mlb-metrics/cmd"

func main() {
	cmd.Execute()
}
