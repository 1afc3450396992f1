package display

import (
	"fmt"
	"os"

	"github.com/docswap/docswap/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____             ____
|  _ \  ___   ___/ ___|_      ____ _ _ __
| | | |/ _ \ / __\___ \ \ /\ / / _`+"`"+` | '_ \
| |_| | (_) | (__ ___) \ V  V / (_| | |_) |
|____/ \___/ \___|____/ \_/\_/ \__,_| .__/
                                    |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
