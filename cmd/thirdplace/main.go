package main

import "github.com/emrgen/thirdplace/cmd"

func main() {
	cmd.Execute()
}
