package xconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writerSection struct {
	Dir        string        `koanf:"dir"`
	MaxRecords int           `koanf:"max_records"`
	MaxAge     time.Duration `koanf:"max_age"`
}

const yamlConfig = `
writer:
  dir: /var/log/app
  max_records: 500
  max_age: 30s
log:
  level: debug
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_YAML(t *testing.T) {
	cfg, err := New(writeConfig(t, "app.yaml", yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format())

	var ws writerSection
	require.NoError(t, cfg.Unmarshal("writer", &ws))
	assert.Equal(t, writerSection{Dir: "/var/log/app", MaxRecords: 500, MaxAge: 30 * time.Second}, ws)
	assert.Equal(t, "debug", cfg.Client().String("log.level"))
}

func TestNew_JSON(t *testing.T) {
	cfg, err := New(writeConfig(t, "app.json", `{"writer":{"dir":"/tmp/x","max_records":"7"}}`))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format())

	var ws writerSection
	require.NoError(t, cfg.Unmarshal("writer", &ws))
	// 弱类型转换："7" → 7
	assert.Equal(t, 7, ws.MaxRecords)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{"空路径", func(*testing.T) string { return "" }, ErrEmptyPath},
		{"未知扩展名", func(*testing.T) string { return "app.toml" }, ErrUnsupportedFormat},
		{"文件不存在", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") }, ErrLoadFailed},
		{"内容无法解析", func(t *testing.T) string { return writeConfig(t, "bad.json", "{not json") }, ErrParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.path(t))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte(yamlConfig), FormatYAML, WithDelim("/"), WithTag(""))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Client().Int("writer/max_records"))
	assert.Empty(t, cfg.Path())
	assert.ErrorIs(t, cfg.Reload(), ErrNotReloadable)

	empty, err := NewFromBytes(nil, FormatJSON)
	require.NoError(t, err)
	var ws writerSection
	require.NoError(t, empty.Unmarshal("writer", &ws))
	assert.Zero(t, ws)

	_, err = NewFromBytes(nil, Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnmarshal_Error(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"writer":{"max_records":"many"}}`), FormatJSON)
	require.NoError(t, err)

	var ws writerSection
	assert.ErrorIs(t, cfg.Unmarshal("writer", &ws), ErrUnmarshalFailed)
}

func TestReload(t *testing.T) {
	path := writeConfig(t, "app.yaml", "log:\n  level: info\n")
	cfg, err := New(path)
	require.NoError(t, err)
	old := cfg.Client()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, "warn", cfg.Client().String("log.level"))
	// 旧快照保持不变
	assert.Equal(t, "info", old.String("log.level"))

	// 解析失败时保留旧配置
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o600))
	require.ErrorIs(t, cfg.Reload(), ErrParseFailed)
	assert.Equal(t, "warn", cfg.Client().String("log.level"))
}
