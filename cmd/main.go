package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/dargueta/squeeze"
	"github.com/dargueta/squeeze/dispatch"
	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "squeeze",
		Usage: "Compress text with Huffman coding and images with run-length encoding",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress a single file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: append(
					optionFlags(),
					&cli.StringFlag{
						Name:  "kind",
						Usage: "declared input kind (text, jpeg, png); derived from the extension if not given",
					},
				),
			},
			{
				Name:      "expand",
				Usage:     "Reverse the compress command",
				Action:    expandFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kind",
						Usage:    "kind the file was compressed as (text, jpeg, png)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "code-table",
						Usage: "Huffman code table; defaults to INPUT_FILE.codes.csv",
					},
					&cli.BoolFlag{
						Name:  "packed",
						Usage: "input was compressed with --packed",
					},
					&cli.Int64Flag{
						Name:  "max-size",
						Usage: "largest image file expand may write, in bytes; -1 for no limit",
						Value: dispatch.DefaultMaxExpandedSize,
					},
				},
			},
			{
				Name:   "kinds",
				Usage:  "List the accepted file extensions",
				Action: listKinds,
			},
			{
				Name:      "process",
				Usage:     "Compress uploaded files from one directory into another",
				Action:    processUploads,
				ArgsUsage: "FILENAME...",
				Flags: append(
					optionFlags(),
					&cli.StringFlag{
						Name:    "upload-dir",
						Value:   "uploads",
						EnvVars: []string{"SQUEEZE_UPLOAD_DIR"},
					},
					&cli.StringFlag{
						Name:    "compressed-dir",
						Value:   "compressed",
						EnvVars: []string{"SQUEEZE_COMPRESSED_DIR"},
					},
				),
			},
		},
	}
}

func optionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "code-table",
			Usage: "write the Huffman code table next to the output so it can be expanded",
		},
		&cli.BoolFlag{
			Name:  "packed",
			Usage: "pack Huffman bits eight to a byte instead of writing '0'/'1' text",
		},
	}
}

func optionsFromFlags(context *cli.Context) squeeze.Option {
	options := squeeze.OptionNone
	if context.Bool("code-table") {
		options |= squeeze.OptionWriteCodeTable
	}
	if context.Bool("packed") {
		options |= squeeze.OptionPackBits
	}
	return options
}

func requireArgs(context *cli.Context, count int) error {
	if context.NArg() != count {
		return cli.Exit(
			fmt.Sprintf("expected %d arguments, got %d", count, context.NArg()), 1)
	}
	return nil
}

func compressFile(context *cli.Context) error {
	if err := requireArgs(context, 2); err != nil {
		return err
	}
	inputPath := context.Args().Get(0)
	outputPath := context.Args().Get(1)
	d := dispatch.Dispatcher{Options: optionsFromFlags(context)}

	if kind := context.String("kind"); kind != "" {
		return d.Compress(squeeze.Kind(kind), inputPath, outputPath)
	}
	return d.CompressFile(inputPath, outputPath)
}

func expandFile(context *cli.Context) error {
	if err := requireArgs(context, 2); err != nil {
		return err
	}

	options := squeeze.OptionNone
	if context.Bool("packed") {
		options |= squeeze.OptionPackBits
	}
	d := dispatch.Dispatcher{Options: options, MaxExpandedSize: context.Int64("max-size")}
	return d.Expand(
		squeeze.Kind(context.String("kind")),
		context.Args().Get(0),
		context.Args().Get(1),
		context.String("code-table"),
	)
}

func listKinds(context *cli.Context) error {
	writer := tabwriter.NewWriter(context.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "EXTENSION\tKIND\tCODEC\tDESCRIPTION")
	for _, format := range dispatch.Formats() {
		codecName, err := dispatch.CodecName(format.Kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(
			writer, "%s\t%s\t%s\t%s\n", format.Extension, format.Kind, codecName, format.Description)
	}
	return writer.Flush()
}

func processUploads(context *cli.Context) error {
	if context.NArg() == 0 {
		return cli.Exit("no files given", 1)
	}

	workspace, err := dispatch.NewWorkspace(dispatch.Config{
		UploadDir:     context.String("upload-dir"),
		CompressedDir: context.String("compressed-dir"),
		Options:       optionsFromFlags(context),
	})
	if err != nil {
		return err
	}

	failures := 0
	for _, filename := range context.Args().Slice() {
		outputPath, err := workspace.CompressUpload(filename)
		if err != nil {
			log.Printf("%s: %s", filename, err.Error())
			failures++
			continue
		}
		fmt.Fprintln(context.App.Writer, outputPath)
	}

	if failures > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", failures, context.NArg()), 2)
	}
	return nil
}
