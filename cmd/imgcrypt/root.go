package main

import (
	"github.com/spf13/cobra"

	"github.com/hidenseek-go/imgcrypt/internal/applog"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "imgcrypt",
	Short: "Image cipher-recipe and steganography toolkit",
	Long: `imgcrypt applies the cipher-recipe pipeline and LSB/PVD steganography
engines to raster images: encrypt, decrypt, hide, extract, and capacity
estimation subcommands.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applog.Configure(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging and per-channel histogram dump")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		applog.Log.Fatal().Err(err).Msg("command failed")
	}
}
