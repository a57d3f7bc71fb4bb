// netlistx exports schematic netlists in Pcbnew, OrcadPCB2, CadStar and
// Spice formats or through user generator commands
package main

import "github.com/nettracex/netlistx/internal/cli"

func main() {
	cli.Execute()
}
