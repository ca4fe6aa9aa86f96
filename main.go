package main

import "github.com/foodlog/foodlog-cli/cmd/foodlog"

func main() {
	foodlog.Execute()
}
