package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hidenseek-go/imgcrypt/internal/lsb"
	"github.com/hidenseek-go/imgcrypt/internal/pvd"
)

var (
	capInputFile string
	capAlgo      string
	capBits      int
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Print the maximum payload size a carrier image can hold",
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(capInputFile)
		if err != nil {
			return err
		}

		var bytes int
		switch capAlgo {
		case "pvd":
			bytes = pvd.Capacity(img)
		default:
			bytes = lsb.Capacity(img, capBits)
		}
		fmt.Printf("%d\n", bytes)
		return nil
	},
}

func init() {
	capacityCmd.Flags().StringVar(&capInputFile, "inputFile", "", "path to the carrier image")
	capacityCmd.Flags().StringVar(&capAlgo, "algo", "lsb", "stego engine: lsb or pvd")
	capacityCmd.Flags().IntVar(&capBits, "bits", 2, "bits per channel for LSB (1-4, ignored for pvd)")
	rootCmd.AddCommand(capacityCmd)
}
