package cli

import (
	"fmt"

	"github.com/diillson/finops-rateio/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ______ _        ____                  _____            _        _
  |  ____(_)      / __ \                |  __ \          | |      (_)
  | |__   _ _ __ | |  | |_ __  ___      | |__) |__ _  ___| |_  ___ _  ___
  |  __| | | '_ \| |  | | '_ \/ __|     |  _  // _' |/ _ \ __|/ _ \ |/ _ \
  | |    | | | | | |__| | |_) \__ \     | | \ \ (_| |  __/ |_|  __/ | (_) |
  |_|    |_|_| |_|\____/| .__/|___/     |_|  \_\__,_|\___|\__|\___|_|\___/
                        | |
                        |_|
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("FinOps Rateio CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
