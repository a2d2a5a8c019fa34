package runner

import "github.com/projectdiscovery/gologger"

const banner = `
                   __                  __
    ___  ___  ____/ /_   ___  _______ / /  ___
   / _ \/ _ \/ __/ __/  / _ \/ __/ _ \/ _ \/ -_)
  / .__/\___/_/  \__/  / .__/_/  \___/_.__/\__/
 /_/                  /_/
`

// Version is the current version of portprobe
const Version = `0.1.0`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}
