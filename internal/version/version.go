package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X winsbygroup.com/appmachineid/internal/version.Version=1.2.3"
var Version = "1.0"

// RepoURL is the project repository URL. Can be overridden at build time via -ldflags -X.
var RepoURL = "https://github.com/winsbygroup/appmachineid"

// Banner prints identifying information about the server.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " Winsby Group LLC. All rights reserved."

	return fmt.Sprintf("%s\nAppMachineID (v%s)\n%s\n%s\n", product(), Version, RepoURL, copyright)
}

func product() string {
	// figlet -f standard AppMachineID
	const s = `
    _                __  __            _     _            ___ ____
   / \   _ __  _ __ |  \/  | __ _  ___| |__ (_)_ __   ___|_ _|  _ \
  / _ \ | '_ \| '_ \| |\/| |/ _' |/ __| '_ \| | '_ \ / _ \| || | | |
 / ___ \| |_) | |_) | |  | | (_| | (__| | | | | | | |  __/| || |_| |
/_/   \_\ .__/| .__/|_|  |_|\__,_|\___|_| |_|_|_| |_|\___|___|____/
        |_|   |_|
`
	return s
}
