package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hidenseek-go/imgcrypt/internal/applog"
	"github.com/hidenseek-go/imgcrypt/internal/recipe"
)

var (
	decInputFile      string
	decOutputFile     string
	decMasterPassword string
	decSteps          []string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Reverse a cipher recipe, recovering it from embedded metadata if --steps is omitted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if decMasterPassword == "" {
			return fmt.Errorf("--masterPassword is required")
		}

		img, err := loadImage(decInputFile)
		if err != nil {
			return err
		}

		var r recipe.Recipe
		if len(decSteps) > 0 {
			r, err = recipe.Parse(joinSteps(decSteps))
			if err != nil {
				return err
			}
		} else {
			r, _, err = recipe.Recover(img, decMasterPassword)
			if err != nil {
				return fmt.Errorf("no --steps given and recipe could not be recovered from metadata: %w", err)
			}
		}

		out, err := recipe.Decrypt(img, r, decMasterPassword)
		if err != nil {
			return err
		}

		applog.Log.Info().Str("recipe", r.String()).Msg("decrypted image")
		return saveImage(decOutputFile, out)
	},
}

func init() {
	decryptCmd.Flags().StringVar(&decInputFile, "inputFile", "", "path to the encrypted image")
	decryptCmd.Flags().StringVar(&decOutputFile, "outputFile", "", "path to write the decrypted image")
	decryptCmd.Flags().StringVar(&decMasterPassword, "masterPassword", "", "master password for steps without an override key")
	decryptCmd.Flags().StringArrayVar(&decSteps, "steps", nil, `recipe step "algo[:count[:param]]" (repeatable; omit to recover from metadata)`)
	rootCmd.AddCommand(decryptCmd)
}
