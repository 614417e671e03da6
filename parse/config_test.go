package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Int     int64
	Float   float64
	Floats  []float64
	String  string
	Strings []string
	Bool    bool
}

func makeTestConfig() (*testConfig, *ConfigVars) {
	con := &testConfig{}
	vars := NewConfigVars("test_config")
	vars.Int(&con.Int, "Int", 1)
	vars.Float(&con.Float, "Float", 0.5)
	vars.Floats(&con.Floats, "Floats", []float64{1, 2})
	vars.String(&con.String, "String", "default")
	vars.Strings(&con.Strings, "Strings", []string{"a"})
	vars.Bool(&con.Bool, "Bool", false)
	return con, vars
}

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "test.config")
	require.NoError(t, os.WriteFile(fname, []byte(text), 0o644))
	return fname
}

func TestValidConfig(t *testing.T) {
	text := `# leading comment

[test_config]
int = 7
FLOAT = 2.5e3 # trailing comment
Floats = 0, 0.5, 1.5
String = hello world
Strings = z, rho_m ,age
Bool = true
`
	con, vars := makeTestConfig()
	require.NoError(t, ReadConfig(writeConfig(t, text), vars))

	assert.Equal(t, int64(7), con.Int)
	assert.Equal(t, 2.5e3, con.Float)
	assert.Equal(t, []float64{0, 0.5, 1.5}, con.Floats)
	assert.Equal(t, "hello world", con.String)
	assert.Equal(t, []string{"z", "rho_m", "age"}, con.Strings)
	assert.True(t, con.Bool)
	assert.True(t, vars.IsSet("floats"))
}

func TestDefaultsSurvive(t *testing.T) {
	con, vars := makeTestConfig()
	require.NoError(t, ReadConfigBytes("x", []byte("[test_config]\nInt = 3\n"), vars))

	assert.Equal(t, int64(3), con.Int)
	assert.Equal(t, 0.5, con.Float)
	assert.Equal(t, []float64{1, 2}, con.Floats)
	assert.Equal(t, "default", con.String)
	assert.True(t, vars.IsSet("Int"))
	assert.False(t, vars.IsSet("Float"))
	assert.False(t, vars.IsSet("NotAVariable"))
}

func TestListsAreReplaced(t *testing.T) {
	con, vars := makeTestConfig()
	require.NoError(t, ReadConfigBytes("x", []byte("[test_config]\nFloats = 3\n"), vars))
	require.NoError(t, ReadConfigBytes("x", []byte("[test_config]\nFloats = 4, 5\n"), vars))
	assert.Equal(t, []float64{4, 5}, con.Floats)

	require.NoError(t, ReadConfigBytes("x", []byte("[test_config]\nStrings =\n"), vars))
	assert.Empty(t, con.Strings)
}

func TestInvalidConfig(t *testing.T) {
	table := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"only comments", "# nothing\n"},
		{"wrong header", "[other_config]\nInt = 1\n"},
		{"non assignment", "[test_config]\nInt 1\n"},
		{"no variable", "[test_config]\n = 1\n"},
		{"duplicates", "[test_config]\nInt = 1\nint = 2\n"},
		{"invalid var", "[test_config]\nMissing = 1\n"},
		{"invalid int", "[test_config]\nInt = 1.5\n"},
		{"invalid float", "[test_config]\nFloat = x\n"},
		{"invalid floats", "[test_config]\nFloats = 1, y\n"},
		{"invalid bool", "[test_config]\nBool = maybe\n"},
	}

	for i := range table {
		_, vars := makeTestConfig()
		err := ReadConfig(writeConfig(t, table[i].text), vars)
		if err == nil {
			t.Errorf("%d) Expected error for %s config.", i, table[i].name)
		}
	}
}

func TestMissingFile(t *testing.T) {
	_, vars := makeTestConfig()
	err := ReadConfig(filepath.Join(t.TempDir(), "missing.config"), vars)
	assert.Error(t, err)
}

func TestErrorLineNumbers(t *testing.T) {
	_, vars := makeTestConfig()
	err := ReadConfigBytes("f.config", []byte("[test_config]\n\n# c\nInt = x\n"), vars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), "an int")
}
