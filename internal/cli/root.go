package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the §6 command surface: a single, subcommand-free
// root command that accepts up to two positional image paths and the
// flags documented in §6. It does not run anything itself — RunE hands
// off to Run, and the resulting ExitCode is stashed on the caller-supplied
// *ExitHolder for the caller (cmd/stcisp) to translate into os.Exit.
type ExitHolder struct {
	Code ExitCode
}

// NewRootCommand constructs the cobra command. ctx is threaded through to
// Run so Ctrl-C (wired up by the caller via signal.NotifyContext) aborts
// an in-progress session cleanly.
func NewRootCommand(ctx context.Context, holder *ExitHolder) *cobra.Command {
	cfg := Config{Out: os.Stdout}
	var optionFlags []string

	cmd := &cobra.Command{
		Use:   "stcisp [code_image] [eeprom_image]",
		Short: "Program STC 8051-family MCUs over the BSL UART protocol",
		Long: "stcisp drives the BSL bootloader protocol spoken by STC's 89/12/15/8-series\n" +
			"8051-family microcontrollers: it auto-detects or targets a specific family,\n" +
			"negotiates the connect handshake, erases and programs flash and EEPROM\n" +
			"images, and writes back the configuration option bytes.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.CodeImagePath = args[0]
			}
			if len(args) > 1 {
				cfg.EEPROMImagePath = args[1]
			}
			cfg.OptionOverrides = optionFlags

			if cfg.CodeImagePath == "" && !cfg.ListOptions {
				return fmt.Errorf("code_image is required unless --list-options is given")
			}

			holder.Code = Run(ctx, cfg)
			if holder.Code != ExitSuccess {
				// Silence cobra's own error line; Run has already printed
				// a more specific message to stderr.
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return errSilent
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Port, "port", "", "serial device path")
	flags.IntVar(&cfg.Baud, "baud", 19200, "baud rate used after the handshake")
	flags.IntVar(&cfg.HandshakeBaud, "handshake", 2400, "baud rate used during the connect handshake")
	flags.StringVar(&cfg.Protocol, "protocol", "auto", "target family: auto, stc89, stc12a, stc12b, stc12, stc15a, stc15, stc8, usb15")
	flags.StringArrayVar(&optionFlags, "option", nil, "configuration option override, name=value (repeatable)")
	flags.Float64Var(&cfg.TrimKHz, "trim", 0, "target MCU clock in kHz for 15/8-series RC trim, 0 keeps the current setting")
	flags.BoolVar(&cfg.Autoreset, "autoreset", false, "pulse DTR to power-cycle the target before connecting")
	flags.StringVar(&cfg.ResetCommand, "resetcmd", "", "external shell command run to power-cycle the target before connecting")
	flags.BoolVar(&cfg.Debug, "debug", false, "debug log level and one progress line per chunk; raw packets are not printed")
	flags.BoolVar(&cfg.ListOptions, "list-options", false, "connect, identify, print the current option settings, and exit without programming")

	cmd.SilenceUsage = true
	return cmd
}

// errSilent is returned by RunE when Run has already reported its own
// error; cobra's own "Error: ..." line would otherwise duplicate it.
var errSilent = fmt.Errorf("")
