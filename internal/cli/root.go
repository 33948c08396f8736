// Package cli implements crmctl, a terminal client for a running CRM API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"crm-service/internal/client"
	"crm-service/internal/crmstate"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exitSuccess   = 0
	exitUserError = 1

	cfgKeyServer  = "server"
	cfgKeyTimeout = "timeout"

	defaultServer  = "http://localhost:3003"
	defaultTimeout = 10 * time.Second
)

// session is what every subcommand works against once the root has
// resolved its configuration.
type session struct {
	v          *viper.Viper
	configFile string
	coord      *crmstate.Coordinator
}

// NewRootCmd builds the crmctl command tree. Settings resolve as flag, then
// CRM_* environment variable, then config file, then default.
func NewRootCmd() *cobra.Command {
	s := &session{v: viper.New()}

	root := &cobra.Command{
		Use:           "crmctl",
		Short:         "Browse and edit the CRM from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.connect()
		},
	}

	root.PersistentFlags().StringVar(&s.configFile, "config", "", "config file (default: ./crmctl.yaml or ~/.config/crm/crmctl.yaml)")
	root.PersistentFlags().String(cfgKeyServer, defaultServer, "API base URL")
	root.PersistentFlags().Duration(cfgKeyTimeout, defaultTimeout, "per-request timeout")
	_ = s.v.BindPFlag(cfgKeyServer, root.PersistentFlags().Lookup(cfgKeyServer))
	_ = s.v.BindPFlag(cfgKeyTimeout, root.PersistentFlags().Lookup(cfgKeyTimeout))

	root.AddCommand(
		newStatsCmd(s),
		newListCmd(s),
		newBoardCmd(s),
		newMoveCmd(s),
		newAddDealCmd(s),
	)
	return root
}

// Execute runs crmctl and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitUserError)
	}
	stop()
	os.Exit(exitSuccess)
}

func (s *session) connect() error {
	if err := s.loadConfig(); err != nil {
		return err
	}

	server := strings.TrimSpace(s.v.GetString(cfgKeyServer))
	if server == "" {
		return errors.New("server URL is empty")
	}
	timeout := s.v.GetDuration(cfgKeyTimeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	api := client.New(server, client.WithTimeout(timeout))
	s.coord = crmstate.NewCoordinator(api)
	return nil
}

// loadConfig reads the optional config file. A missing file is only an
// error when it was named explicitly.
func (s *session) loadConfig() error {
	s.v.SetEnvPrefix("CRM")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	if s.configFile != "" {
		s.v.SetConfigFile(s.configFile)
	} else {
		s.v.SetConfigName("crmctl")
		s.v.SetConfigType("yaml")
		s.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			s.v.AddConfigPath(home + "/.config/crm")
		}
	}

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if s.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pageFooter(w io.Writer, page, totalPages int, total int64) {
	fmt.Fprintf(w, "\nPage %d of %d, %d total\n", page, totalPages, total)
}
