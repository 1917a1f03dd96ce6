package main

import "github.com/geoflows/avaflow/cmd"

func main() {
	cmd.Execute()
}
