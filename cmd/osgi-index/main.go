package main

import "github.com/lyraproj/osgi-index/internal/cmd"

func main() {
	cmd.Execute()
}
