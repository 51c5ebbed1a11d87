package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hidenseek-go/imgcrypt/internal/applog"
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/lsb"
	"github.com/hidenseek-go/imgcrypt/internal/pvd"
)

var (
	extInputFile  string
	extOutputFile string
	extAlgo       string
	extPass       string
	extImage      bool
	extBits       int
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract, decrypt, and decompress data or an image hidden in a stego image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if extPass == "" {
			return fmt.Errorf("--pass is required")
		}
		stego, err := loadImage(extInputFile)
		if err != nil {
			return err
		}

		if extImage {
			img, err := extractImagePayload(stego)
			if err != nil {
				return err
			}
			applog.Log.Info().Str("algo", extAlgo).Msg("extracted image payload")
			return saveImage(extOutputFile, img)
		}

		data, err := extractDataPayload(stego)
		if err != nil {
			return err
		}
		if err := os.WriteFile(extOutputFile, data, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		applog.Log.Info().Str("algo", extAlgo).Int("bytes", len(data)).Msg("extracted data payload")
		return nil
	},
}

func extractDataPayload(stego *imgbuf.Image) ([]byte, error) {
	if extAlgo == "pvd" {
		return pvd.ExtractData(stego, extPass)
	}
	return lsb.ExtractData(stego, extPass, extBits)
}

func extractImagePayload(stego *imgbuf.Image) (*imgbuf.Image, error) {
	if extAlgo == "pvd" {
		return pvd.ExtractImage(stego, extPass)
	}
	return lsb.ExtractImage(stego, extPass, extBits)
}

func init() {
	extractCmd.Flags().StringVar(&extInputFile, "inputFile", "", "path to the stego image")
	extractCmd.Flags().StringVar(&extOutputFile, "outputFile", "", "path to write the extracted data or image")
	extractCmd.Flags().StringVar(&extAlgo, "algo", "lsb", "stego engine: lsb or pvd")
	extractCmd.Flags().StringVar(&extPass, "pass", "", "password for the extract/decrypt/decompress pipeline")
	extractCmd.Flags().BoolVar(&extImage, "image", false, "extract a hidden image rather than raw data")
	extractCmd.Flags().IntVar(&extBits, "bits", 2, "bits per channel for LSB (1-4, ignored for pvd)")
	rootCmd.AddCommand(extractCmd)
}
