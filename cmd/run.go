package cmd

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-sc"
	"github.com/hashicorp/go-sc/telemetry"
)

const (
	// fileExtension is the file extension of containers
	fileExtension = ".sc"

	// decompressedSuffix is appended to the output name if the input does not
	// end with fileExtension
	decompressedSuffix = ".decompressed"

	// outputFileMode is the file mode for created files (respecting umask)
	outputFileMode = 0640
)

// CLI are the cli parameters for the sctool binary
type CLI struct {
	EventBus      string           `optional:"" help:"Event bus for published telemetry data. (default: account default bus)"`
	EventSource   string           `optional:"" default:"hashicorp.go-sc" help:"Source of published telemetry events."`
	Metrics       bool             `short:"M" optional:"" default:"false" help:"Print telemetry data to log after each run."`
	PublishEvents bool             `optional:"" help:"Publish telemetry data as CloudWatch events."`
	Region        string           `optional:"" help:"AWS region for published telemetry data. (default: from environment)"`
	Verbose       bool             `short:"v" optional:"" help:"Verbose logging."`
	Version       kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`

	Decompress DecompressCmd `cmd:"" help:"Decompress a container."`
	Compress   CompressCmd   `cmd:"" help:"Compress a file into a container."`
	Info       InfoCmd       `cmd:"" help:"Print the header of a container."`
}

// Limits are the size limits shared by the commands
type Limits struct {
	MaxInputSize  int64 `optional:"" default:"1073741824" help:"Maximum input size that is allowed (in bytes). (disable check: -1)"`
	MaxOutputSize int64 `optional:"" default:"1073741824" help:"Maximum output size that is allowed (in bytes). (disable check: -1)"`
}

// DecompressCmd decompresses a container.
type DecompressCmd struct {
	Limits `embed:""`

	Input       string `arg:"" name:"input" help:"Path to container. (\"-\" for STDIN)"`
	Output      string `arg:"" name:"output" optional:"" help:"Output file. (\"-\" for STDOUT, default: input without .sc)"`
	Overwrite   bool   `short:"O" help:"Overwrite if exist."`
	PassThrough bool   `short:"P" help:"Copy input that is not a container verbatim."`
	TrailerSize int64  `optional:"" default:"0" help:"Number of bytes at the end of the input that are not part of the container."`
}

// CompressCmd compresses a file into a container.
type CompressCmd struct {
	Limits `embed:""`

	Input         string `arg:"" name:"input" help:"Path to file. (\"-\" for STDIN)"`
	Output        string `arg:"" name:"output" optional:"" help:"Output container. (\"-\" for STDOUT, default: input with .sc)"`
	Codec         string `short:"c" default:"zstd" enum:"none,lzma,lzham,zstd" help:"Codec of the payload (none, lzma, lzham, zstd)."`
	HeaderVersion uint32 `optional:"" default:"4" help:"Header version (1-4). Metadata requires version 4."`
	Hash          string `optional:"" help:"Hash as hex string."`
	ID            string `name:"id" optional:"" help:"Identifier as hex string."`
	Level         int    `short:"l" optional:"" default:"3" help:"Zstandard compression level."`
	Metadata      string `optional:"" help:"Path to a file with metadata."`
	Overwrite     bool   `short:"O" help:"Overwrite if exist."`
}

// InfoCmd prints the header of a container.
type InfoCmd struct {
	Input       string `arg:"" name:"input" help:"Path to container. (\"-\" for STDIN)"`
	TrailerSize int64  `optional:"" default:"0" help:"Number of bytes at the end of the input that are not part of the container."`
}

// runContext is bound to the Run methods of the commands
type runContext struct {
	ctx    context.Context
	logger *slog.Logger
	opts   []sc.ConfigOption
}

// Run the entrypoint into go-sc as a cli tool
func Run(version, commit, date string) {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Description("A Supercell .sc container utility"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *sc.TelemetryData) {
		if cli.Metrics {
			logger.Info("run finished",
				"operation", td.Operation,
				"codec", td.Codec,
				"input", humanize.Bytes(uint64(td.InputSize)),
				"output", humanize.Bytes(uint64(td.OutputSize)),
				"duration", td.Duration.Round(time.Millisecond),
				"telemetry", td,
			)
		}
	}

	ctx := context.Background()
	hooks := []sc.TelemetryHook{telemetryToLog}

	// publish telemetry data
	if cli.PublishEvents {
		client, err := telemetry.NewEventsClient(ctx, cli.Region)
		kctx.FatalIfErrorf(err)
		publisher := telemetry.NewEventsPublisher(client,
			telemetry.WithEventBus(cli.EventBus),
			telemetry.WithLogger(logger),
			telemetry.WithSource(cli.EventSource),
		)
		hooks = append(hooks, publisher.Hook())
	}

	rc := &runContext{
		ctx:    ctx,
		logger: logger,
		opts: []sc.ConfigOption{
			sc.WithLogger(logger),
			sc.WithTelemetryHook(func(ctx context.Context, td *sc.TelemetryData) {
				for _, hook := range hooks {
					hook(ctx, td)
				}
			}),
		},
	}

	if err := kctx.Run(rc); err != nil {
		logger.Error("sctool failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to the numeric value of its codec or pipeline classification.
func exitCode(err error) int {
	if kind := sc.CodecKindOf(err); kind != sc.CodecOK {
		return int(kind)
	}
	return int(sc.KindOf(err))
}

// Run decompresses the input container.
func (c *DecompressCmd) Run(rc *runContext) (err error) {
	src, err := openInput(c.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	output := c.Output
	if output == "" {
		output = decompressedName(c.Input)
	}
	dst, err := createOutput(output, c.Overwrite)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := finishOutput(dst, output); err == nil {
			err = cerr
		}
	}()

	cfg := sc.NewConfig(append(rc.opts,
		sc.WithMaxInputSize(c.MaxInputSize),
		sc.WithMaxOutputSize(c.MaxOutputSize),
		sc.WithPassThrough(c.PassThrough),
		sc.WithTrailerSize(c.TrailerSize),
	)...)

	hdr, err := sc.Decompress(rc.ctx, dst, src, cfg)
	if err != nil {
		return err
	}
	rc.logger.Debug("decompressed", "output", output, "version", hdr.Version, "signature", hdr.Signature)
	return nil
}

// Run compresses the input file.
func (c *CompressCmd) Run(rc *runContext) (err error) {
	codec, err := sc.ParseCodec(c.Codec)
	if err != nil {
		return fmt.Errorf("%w: %w", sc.ErrWrongFile, err)
	}

	hdr := &sc.Header{Version: c.HeaderVersion}
	if hdr.ID, err = decodeHex("id", c.ID); err != nil {
		return err
	}
	if hdr.Hash, err = decodeHex("hash", c.Hash); err != nil {
		return err
	}
	if c.Metadata != "" {
		if !sc.FileExists(c.Metadata) {
			return fmt.Errorf("%w: metadata file not found: %s", sc.ErrFileRead, c.Metadata)
		}
		if hdr.Metadata, err = os.ReadFile(c.Metadata); err != nil {
			return fmt.Errorf("%w: %w", sc.ErrFileRead, err)
		}
	}

	src, err := openInput(c.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	output := c.Output
	if output == "" {
		output = compressedName(c.Input)
	}
	dst, err := createOutput(output, c.Overwrite)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := finishOutput(dst, output); err == nil {
			err = cerr
		}
	}()

	cfg := sc.NewConfig(append(rc.opts,
		sc.WithMaxInputSize(c.MaxInputSize),
		sc.WithMaxOutputSize(c.MaxOutputSize),
		sc.WithZstdLevel(c.Level),
	)...)

	return sc.Compress(rc.ctx, dst, src, codec, hdr, cfg)
}

// Run prints the header of the input container.
func (c *InfoCmd) Run(rc *runContext) error {
	src, err := openInput(c.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	if c.TrailerSize > 0 {
		src.SetEndOffset(c.TrailerSize)
	}

	hdr, err := sc.ParseHeader(src)
	if err != nil {
		return err
	}
	codec, cerr := hdr.Codec()

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "version:    %d\n", hdr.Version)
	fmt.Fprintf(w, "signature:  %s\n", hdr.Signature)
	if cerr != nil {
		fmt.Fprintf(w, "codec:      unknown\n")
	} else {
		fmt.Fprintf(w, "codec:      %s\n", codec)
	}
	fmt.Fprintf(w, "id:         %s (%d bytes)\n", hex.EncodeToString(hdr.ID), len(hdr.ID))
	fmt.Fprintf(w, "hash:       %s (%d bytes)\n", hex.EncodeToString(hdr.Hash), len(hdr.Hash))
	if hdr.HasMetadata() {
		fmt.Fprintf(w, "metadata:   %s\n", humanize.Bytes(uint64(len(hdr.Metadata))))
	}
	fmt.Fprintf(w, "header:     %s\n", humanize.Bytes(uint64(hdr.Len())))
	fmt.Fprintf(w, "payload:    %s\n", humanize.Bytes(uint64(src.Size()-src.Tell())))
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", sc.ErrFileWrite, err)
	}
	return cerr
}

// openInput opens path as stream. "-" reads STDIN into memory.
func openInput(path string) (sc.Stream, error) {
	if path == "-" {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read stdin: %w", sc.ErrFileRead, err)
		}
		return sc.NewBufferStream(data), nil
	}

	if !sc.FileExists(path) {
		return nil, fmt.Errorf("%w: input file not found: %s", sc.ErrFileRead, path)
	}
	s, err := sc.OpenFileStream(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sc.ErrFileRead, err)
	}
	return s, nil
}

// createOutput creates path as stream. "-" buffers the output in memory
// until finishOutput writes it to STDOUT.
func createOutput(path string, overwrite bool) (sc.Stream, error) {
	if path == "-" {
		return sc.NewBufferStream(nil), nil
	}
	s, err := sc.CreateFileStream(path, overwrite, outputFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sc.ErrFileWrite, err)
	}
	return s, nil
}

// finishOutput flushes buffered STDOUT output and closes dst.
func finishOutput(dst sc.Stream, path string) error {
	if b, ok := dst.(*sc.BufferStream); ok && path == "-" {
		if _, err := os.Stdout.Write(b.Bytes()); err != nil {
			dst.Close()
			return fmt.Errorf("%w: %w", sc.ErrFileWrite, err)
		}
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("%w: %w", sc.ErrFileWrite, err)
	}
	return nil
}

// decompressedName removes the container extension from input, or appends a
// suffix if there is none.
func decompressedName(input string) string {
	if input == "-" {
		return "-"
	}
	name := sc.FileBasename(input)
	if sc.EndsWith(name, fileExtension) && len(name) > len(fileExtension) {
		name = name[:len(name)-len(fileExtension)]
	} else {
		name += decompressedSuffix
	}
	return filepath.Join(filepath.Dir(input), name)
}

// compressedName appends the container extension to input.
func compressedName(input string) string {
	if input == "-" {
		return "-"
	}
	return input + fileExtension
}

func decodeHex(field string, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %w", sc.ErrWrongFile, field, err)
	}
	return b, nil
}
