package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
	"github.com/ElBenerDev/asistenteAltamirano/internal/render"
)

func newParseCommand(opts *options) *cobra.Command {
	var (
		format    string
		htmlInput bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Extract listings from a saved assistant reply",
		Long:  "Extract listings from a saved assistant reply. Reads stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			extractor := listing.NewExtractor(opts.cfg.Listings.BaseOrigin, opts.logger)
			var records []models.PropertyRecord
			if htmlInput {
				records = extractor.ExtractHTML(source)
			} else {
				records = extractor.Extract(source)
			}
			opts.logger.WithField("listings", len(records)).Debug("Parsed reply")

			return writeRecords(cmd.OutOrStdout(), records, format, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, html or text")
	cmd.Flags().BoolVar(&htmlInput, "html-input", false, "input is property card markup")

	return cmd
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func writeRecords(w io.Writer, records []models.PropertyRecord, format string, opts *options) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "html":
		html, err := render.NewRenderer(opts.cfg.Listings.PlaceholderImage, opts.logger).Cards(records)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, html)
		return err
	case "text":
		return render.ListingsText(w, records)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
