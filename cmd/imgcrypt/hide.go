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
	hideInputFile  string
	hideOutputFile string
	hideAlgo       string
	hidePass       string
	hideData       string
	hideImage      bool
	hideBits       int
)

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Compress, encrypt, and embed data or an image into a carrier image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if hidePass == "" {
			return fmt.Errorf("--pass is required")
		}
		carrier, err := loadImage(hideInputFile)
		if err != nil {
			return err
		}

		var out *imgbuf.Image
		if hideImage {
			payload, err := loadImage(hideData)
			if err != nil {
				return err
			}
			out, err = hideImagePayload(carrier, payload)
			if err != nil {
				return err
			}
		} else {
			data, err := readDataArg(hideData)
			if err != nil {
				return err
			}
			out, err = hideDataPayload(carrier, data)
			if err != nil {
				return err
			}
		}

		applog.Log.Info().Str("algo", hideAlgo).Msg("hid payload")
		return saveImage(hideOutputFile, out)
	},
}

func hideDataPayload(carrier *imgbuf.Image, data []byte) (*imgbuf.Image, error) {
	if hideAlgo == "pvd" {
		return pvd.HideData(carrier, data, hidePass)
	}
	return lsb.HideData(carrier, data, hidePass, hideBits)
}

func hideImagePayload(carrier, payload *imgbuf.Image) (*imgbuf.Image, error) {
	if hideAlgo == "pvd" {
		return pvd.HideImage(carrier, payload, hidePass)
	}
	return lsb.HideImage(carrier, payload, hidePass, hideBits)
}

func readDataArg(arg string) ([]byte, error) {
	if b, err := os.ReadFile(arg); err == nil {
		return b, nil
	}
	return []byte(arg), nil
}

func init() {
	hideCmd.Flags().StringVar(&hideInputFile, "inputFile", "", "path to the carrier image")
	hideCmd.Flags().StringVar(&hideOutputFile, "outputFile", "", "path to write the stego image")
	hideCmd.Flags().StringVar(&hideAlgo, "algo", "lsb", "stego engine: lsb or pvd")
	hideCmd.Flags().StringVar(&hidePass, "pass", "", "password for the compress/encrypt/embed pipeline")
	hideCmd.Flags().StringVar(&hideData, "data", "", "text, or a path to a data/image file, to hide")
	hideCmd.Flags().BoolVar(&hideImage, "image", false, "interpret --data as an image file to hide rather than text/file")
	hideCmd.Flags().IntVar(&hideBits, "bits", 2, "bits per channel for LSB (1-4, ignored for pvd)")
	rootCmd.AddCommand(hideCmd)
}
