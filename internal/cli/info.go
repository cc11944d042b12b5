package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentx-labs/plugx/internal/compat"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details of one extension",
	Long: `Show an extension's descriptor, whether the host version and security flags
admit it, and its effective configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(infoCmd)
}

// infoView is the JSON shape of plugx info.
type infoView struct {
	listEntry
	Description  string                 `json:"description,omitempty"`
	Author       string                 `json:"author,omitempty"`
	License      string                 `json:"license,omitempty"`
	HostRange    string                 `json:"host_range"`
	Compatible   bool                   `json:"compatible"`
	Permissions  []string               `json:"required_permissions,omitempty"`
	Permitted    bool                   `json:"permitted"`
	Sanitized    []string               `json:"input_sanitization,omitempty"`
	Dependencies []string               `json:"dependencies,omitempty"`
	Config       map[string]interface{} `json:"config,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	a, err := loadAll(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.manifests.Load(name)
	if err != nil {
		return err
	}

	v := infoView{
		listEntry:    describe(a, name),
		Description:  m.Description,
		Author:       m.Author,
		License:      m.License,
		HostRange:    hostRange(m.MinHostVersion, m.MaxHostVersion),
		Permissions:  m.Security.RequiredPermissions,
		Sanitized:    m.Security.InputSanitization,
		Dependencies: m.Dependencies,
		Config:       m.Config,
	}
	v.Compatible, _ = compat.Check(m.MinHostVersion, m.MaxHostVersion, a.registry.HostVersion())
	v.Permitted, _ = security.Check(m.Security.RequiredPermissions, a.registry.Security())
	if ext, ok := a.registry.Get(name); ok {
		v.Config = ext.Config()
	}

	if infoJSON {
		return printJSON(cmd, v)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:         %s\n", name)
	fmt.Fprintf(out, "Version:      %s\n", m.Version)
	if v.Description != "" {
		fmt.Fprintf(out, "Description:  %s\n", v.Description)
	}
	if v.Author != "" {
		fmt.Fprintf(out, "Author:       %s\n", v.Author)
	}
	if v.License != "" {
		fmt.Fprintf(out, "License:      %s\n", v.License)
	}
	fmt.Fprintf(out, "Status:       %s\n", v.Status)
	fmt.Fprintf(out, "Host range:   %s (host %s, %s)\n", v.HostRange, a.registry.HostVersion(), yesNo(v.Compatible, "compatible", "incompatible"))
	if len(v.Permissions) > 0 {
		fmt.Fprintf(out, "Permissions:  %s (%s)\n", strings.Join(v.Permissions, ", "), yesNo(v.Permitted, "granted", "denied"))
	}
	if len(v.Sanitized) > 0 {
		fmt.Fprintf(out, "Sanitizes:    %s\n", strings.Join(v.Sanitized, ", "))
	}
	if len(v.Dependencies) > 0 {
		fmt.Fprintf(out, "Requires:     %s\n", strings.Join(v.Dependencies, ", "))
	}
	if len(v.Config) > 0 {
		fmt.Fprintln(out, "Config:")
		keys := make([]string, 0, len(v.Config))
		for k := range v.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %v\n", k, v.Config[k])
		}
	}
	return nil
}

func hostRange(minV, maxV string) string {
	if minV == "" {
		minV = "*"
	}
	if maxV == "" {
		maxV = "*"
	}
	return minV + " - " + maxV
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
