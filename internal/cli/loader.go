package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tablestream/internal/record"
	"github.com/roach88/tablestream/internal/sqlite"
	"github.com/roach88/tablestream/internal/stream"
)

// Profile is a stream profile kept in a YAML file: the construction
// parameters for one stream, so invocations don't repeat --db/--table.
//
// Example:
//
//	database: ./app.db
//	table: stdout_stream
//	reader: worker-7
//	metadata:
//	  service: ingest
type Profile struct {
	Database string            `yaml:"database"`
	Table    string            `yaml:"table"`
	Reader   string            `yaml:"reader"`
	Metadata map[string]string `yaml:"metadata"`
}

// LoadProfile reads and decodes a YAML stream profile.
// Unknown fields are rejected to catch typos in profile files.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var p Profile
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// StreamOptions holds the per-command flags identifying the target stream.
// A profile file fills in whatever the flags leave unset; explicit flags win.
type StreamOptions struct {
	*RootOptions
	ProfilePath string
	Database    string
	Table       string
	Reader      string
	Meta        []string // key=value pairs, write commands only

	profile *Profile
}

// addStreamFlags registers the shared stream-target flags on a command.
func (o *StreamOptions) addStreamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.ProfilePath, "profile", "", "YAML stream profile file")
	cmd.Flags().StringVar(&o.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&o.Table, "table", "", "stream table name")
}

// resolve merges profile values under the flags and validates that a target
// is fully specified.
func (o *StreamOptions) resolve() error {
	if o.ProfilePath != "" {
		p, err := LoadProfile(o.ProfilePath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load profile", err)
		}
		o.profile = p
		if o.Database == "" {
			o.Database = p.Database
		}
		if o.Table == "" {
			o.Table = p.Table
		}
		if o.Reader == "" {
			o.Reader = p.Reader
		}
	}

	if o.Database == "" {
		return WrapExitError(ExitCommandError, "no database", fmt.Errorf("set --db or a profile with database"))
	}
	if o.Table == "" {
		return WrapExitError(ExitCommandError, "no table", fmt.Errorf("set --table or a profile with table"))
	}
	return nil
}

// sessionMetadata builds the write-session metadata: defaults (hostname, pid,
// session id/ts), overlaid by profile metadata, overlaid by --meta pairs.
func (o *StreamOptions) sessionMetadata() (record.Metadata, error) {
	meta := record.NewSessionMetadata()
	if o.profile != nil {
		for k, v := range o.profile.Metadata {
			meta[k] = v
		}
	}
	for _, pair := range o.Meta {
		k, v, found := strings.Cut(pair, "=")
		if !found || k == "" {
			return nil, WrapExitError(ExitCommandError, "invalid --meta", fmt.Errorf("%q is not key=value", pair))
		}
		meta[k] = v
	}
	return meta, nil
}

// openStream opens the storage port and constructs a stream in the given
// mode. The table must already be provisioned (tablestream init).
func (o *StreamOptions) openStream(mode stream.Mode) (*stream.Stream, error) {
	if err := o.resolve(); err != nil {
		return nil, err
	}

	var meta record.Metadata
	if mode.Writable() {
		m, err := o.sessionMetadata()
		if err != nil {
			return nil, err
		}
		meta = m
	}

	store, err := sqlite.Open(o.Database, o.Table)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open stream table", err)
	}

	s, err := stream.New(store, stream.Config{Mode: mode, Metadata: meta})
	if err != nil {
		store.Close()
		return nil, WrapExitError(ExitCommandError, "failed to construct stream", err)
	}
	return s, nil
}
