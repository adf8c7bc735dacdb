package main

import "github.com/badroneai/finance-flow-sub001/cmd"

func main() {
	cmd.Execute()
}
