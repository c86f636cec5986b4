package main

import "github.com/MaksRe/solidity-erc20-playground/cmd"

func main() {
	cmd.Execute()
}
