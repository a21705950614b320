package cmd

import (
	"fmt"

	"github.com/kiosk404/ponder/pkg/version"
)

const bannerText = `
  ____                 _           
 |  _ \ ___  _ __   __| | ___ _ __ 
 | |_) / _ \| '_ \ / _' |/ _ \ '__|
 |  __/ (_) | | | | (_| |  __/ |   
 |_|   \___/|_| |_|\__,_|\___|_|   

        Thinking-mode chat with workspace tools
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
