// triwatch — advisory Trust Risk Index over governance event windows.
// It scores; it never decides.
package main

import "github.com/BIGmindz/ChainBridge-sub011/internal/cli"

func main() {
	cli.Execute()
}
