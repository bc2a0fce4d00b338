package main

import "bom-reconciler/cmd"

func main() {
	cmd.Execute()
}
