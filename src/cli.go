package dnscli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type Cli struct {
	Config
	configPath string
	flags      Config
	out        io.Writer
	errOut     io.Writer
	log        logr.Logger
}

// Init loads the config file and lets command-line flags override it.
func (s *Cli) Init(cmd *cobra.Command, args []string) error {
	if _, err := s.Config.Load(s.configPath); err != nil {
		return err
	}
	if s.flags.Provider != "" {
		s.Config.Provider = s.flags.Provider
	}
	if s.flags.Key != "" {
		s.Config.Key = s.flags.Key
	}
	if s.flags.Domain != "" {
		s.Config.Domain = s.flags.Domain
	}
	if s.flags.Verbose > 0 {
		s.Config.Verbose = s.flags.Verbose
	}
	s.log = newLogger(s.errOut, s.Config.Verbose)
	return nil
}

// Load builds the configured provider. The key file is read on every
// invocation; nothing is cached between runs.
func (s *Cli) Load() (DNSProvider, error) {
	kind, err := ParseProviderKind(s.Config.Provider)
	if err != nil {
		return nil, err
	}
	if s.Config.Key == "" {
		return nil, errors.New("missing key file, use --key")
	}
	if s.Config.Domain == "" {
		return nil, errors.New("missing domain, use --domain")
	}
	token, err := FetchKey(s.Config.Key)
	if err != nil {
		return nil, err
	}
	cred, err := ParseCredential(token)
	if err != nil {
		return nil, err
	}
	return NewProvider(kind, cred, s.Config.Domain, s.Config.Profile(), s.log)
}

type recordFlags struct {
	id         uint64
	subDomain  string
	recordType string
	recordLine string
	value      string
	iface      string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.subDomain, "sub", "s", "", "Subdomain")
	cmd.Flags().StringVarP(&f.recordType, "type", "t", "", "Record type")
	cmd.Flags().StringVarP(&f.recordLine, "line", "l", "", "Record line, a line name or a numeric line id")
	cmd.Flags().StringVarP(&f.value, "value", "v", "", "Value")
	cmd.Flags().StringVar(&f.iface, "if", "", "Get value from interface: name[,4|6[,prefix[,nth]]]")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("line")
}

// resolve picks the value from --value or --if. The type is only trimmed and
// upper-cased; the provider has types of its own, such as 显性URL, so it
// does the validation.
func (f *recordFlags) resolve() (string, string, error) {
	t := strings.ToUpper(strings.TrimSpace(f.recordType))
	if t == "" {
		return "", "", errors.New("missing record type, use --type")
	}
	value, err := InterfaceOrValue(f.iface, f.value)
	if err != nil {
		return "", "", err
	}
	return t, value, nil
}

func (s *Cli) addCommand() *cobra.Command {
	f := &recordFlags{}
	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a"},
		Short:   "Add a record",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, value, err := f.resolve()
			if err != nil {
				return err
			}
			provider, err := s.Load()
			if err != nil {
				return err
			}
			id, err := provider.AddRecord(cmd.Context(), f.subDomain, t, f.recordLine, value)
			if err != nil {
				return errors.WithMessage(err, "add record error")
			}
			fmt.Fprintln(s.out, id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (s *Cli) listCommand() *cobra.Command {
	var (
		offset, length uint64
		subDomain      string
		format         string
		sorted         bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "List records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "line" && format != "table" {
				return errors.Errorf("unknown format %q", format)
			}
			provider, err := s.Load()
			if err != nil {
				return err
			}
			opts := ListOptions{SubDomain: subDomain}
			if cmd.Flags().Changed("offset") {
				opts.Offset = &offset
			}
			if cmd.Flags().Changed("length") {
				opts.Length = &length
			}
			records, err := provider.ListRecord(cmd.Context(), opts)
			if err != nil {
				return errors.WithMessage(err, "list record error")
			}
			if sorted {
				sortRecord(records)
			}
			if format == "table" {
				printRecordTable(s.out, records, s.Config.Domain)
			} else {
				printRecords(s.out, records)
			}
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&offset, "offset", "o", 0, "Offset")
	cmd.Flags().Uint64VarP(&length, "length", "n", 0, "Length")
	cmd.Flags().StringVarP(&subDomain, "sub", "s", "", "Subdomain")
	cmd.Flags().StringVarP(&format, "format", "f", "line", "Output format: line or table")
	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort by name")
	return cmd
}

func (s *Cli) infoCommand() *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:     "info",
		Aliases: []string{"i"},
		Short:   "Show a record",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := s.Load()
			if err != nil {
				return err
			}
			record, err := provider.InfoRecord(cmd.Context(), id)
			if err != nil {
				return errors.WithMessage(err, "info record error")
			}
			fmt.Fprintln(s.out, record.String())
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&id, "id", "i", 0, "Record ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (s *Cli) modifyCommand() *cobra.Command {
	f := &recordFlags{}
	cmd := &cobra.Command{
		Use:     "modify",
		Aliases: []string{"m", "mod"},
		Short:   "Modify a record",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, value, err := f.resolve()
			if err != nil {
				return err
			}
			provider, err := s.Load()
			if err != nil {
				return err
			}
			id, err := provider.ModifyRecord(cmd.Context(), f.id, f.subDomain, t, f.recordLine, value)
			if err != nil {
				return errors.WithMessage(err, "modify record error")
			}
			fmt.Fprintln(s.out, id)
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&f.id, "id", "i", 0, "Record ID")
	_ = cmd.MarkFlagRequired("id")
	f.register(cmd)
	return cmd
}

func (s *Cli) deleteCommand() *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"d", "del", "rm"},
		Short:   "Delete a record",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := s.Load()
			if err != nil {
				return err
			}
			if err := provider.DeleteRecord(cmd.Context(), id); err != nil {
				return errors.WithMessage(err, "delete record error")
			}
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&id, "id", "i", 0, "Record ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (s *Cli) interfacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "interfaces [spec]",
		Aliases: []string{"if"},
		Short:   "List interface addresses",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := ""
			if len(args) > 0 {
				spec = args[0]
			}
			addrs, err := InterfaceList(spec)
			if err != nil {
				return err
			}
			for _, a := range addrs {
				fmt.Fprintf(s.out, "%s\t%s\n", a.Name, a.Addr)
			}
			return nil
		},
	}
}

func (s *Cli) checkCommand() *cobra.Command {
	var subDomain, t, server, expect string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Query a resolver for a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.Config.Domain == "" {
				return errors.New("missing domain, use --domain")
			}
			if server == "" {
				server = s.Config.Resolver
			}
			t, err := recordType(t)
			if err != nil {
				return err
			}
			name := fullDomain(subDomain, s.Config.Domain)
			values, err := QueryRecord(cmd.Context(), server, name, t)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(s.out, v)
			}
			if expect != "" && !containsValue(values, t, expect) {
				return errors.Errorf("%s %s does not resolve to %s", name, t, expect)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&subDomain, "sub", "s", "", "Subdomain")
	cmd.Flags().StringVarP(&t, "type", "t", "A", "Record type")
	cmd.Flags().StringVar(&server, "server", "", "Resolver address, host:port")
	cmd.Flags().StringVar(&expect, "expect", "", "Fail unless this value is returned")
	return cmd
}

// NewCommand builds the command tree writing to out and errOut.
func NewCommand(out, errOut io.Writer) *cobra.Command {
	s := &Cli{out: out, errOut: errOut, log: logr.Discard()}
	root := &cobra.Command{
		Use:               "cao",
		Short:             "IP Update",
		Long:              "cao manages DNS records through the DNSPod API.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.Init,
	}
	root.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "Config path.")
	root.PersistentFlags().StringVarP(&s.flags.Provider, "provider", "p", "", "DNS API provider. Only dnspod now.")
	root.PersistentFlags().StringVarP(&s.flags.Key, "key", "k", "", "Key file. The file only contains \"id,key\".")
	root.PersistentFlags().StringVarP(&s.flags.Domain, "domain", "d", "", "Domain")
	root.PersistentFlags().CountVar(&s.flags.Verbose, "verbose", "Log verbosity, repeat for more.")
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(
		s.addCommand(),
		s.listCommand(),
		s.infoCommand(),
		s.modifyCommand(),
		s.deleteCommand(),
		s.interfacesCommand(),
		s.checkCommand(),
	)
	return root
}

func Execute() {
	if err := NewCommand(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s.\n", err)
		os.Exit(1)
	}
}
