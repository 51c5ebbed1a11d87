package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hidenseek-go/imgcrypt/internal/applog"
	"github.com/hidenseek-go/imgcrypt/internal/recipe"
)

var (
	encInputFile      string
	encOutputFile     string
	encMasterPassword string
	encSteps          []string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Apply a cipher recipe to an image and embed the recipe in its metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		if encMasterPassword == "" {
			return fmt.Errorf("--masterPassword is required")
		}
		if len(encSteps) == 0 {
			return fmt.Errorf("--steps is required for encrypt")
		}
		if encOutputFile == "" {
			encOutputFile = encInputFile
		}

		img, err := loadImage(encInputFile)
		if err != nil {
			return err
		}

		r, err := recipe.Parse(joinSteps(encSteps))
		if err != nil {
			return err
		}

		out, err := recipe.Encrypt(img, r, encMasterPassword)
		if err != nil {
			return err
		}
		// Metadata embedding failure degrades to a warning: the encrypted
		// image is still worth saving even if its recipe can't be
		// recovered later without --steps (§7).
		if err := recipe.Embed(out, r, encMasterPassword, nil); err != nil {
			applog.Log.Warn().Err(err).Msg("failed to embed recipe metadata; saving encrypted image without it")
		}

		applog.Log.Info().Str("recipe", r.String()).Msg("encrypted image")
		return saveImage(encOutputFile, out)
	},
}

func joinSteps(steps []string) string {
	s := ""
	for i, step := range steps {
		if i > 0 {
			s += " "
		}
		s += step
	}
	return s
}

func init() {
	encryptCmd.Flags().StringVar(&encInputFile, "inputFile", "", "path to the source image")
	encryptCmd.Flags().StringVar(&encOutputFile, "outputFile", "", "path to write the encrypted image (defaults to --inputFile)")
	encryptCmd.Flags().StringVar(&encMasterPassword, "masterPassword", "", "master password for steps without an override key")
	encryptCmd.Flags().StringArrayVar(&encSteps, "steps", nil, `recipe step "algo[:count[:param]]" (repeatable)`)
	rootCmd.AddCommand(encryptCmd)
}
