package profile

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_Line(t *testing.T) {
	testCases := []struct {
		value    string
		expected string
	}{
		{"/home/u/catkin_ws", "export BASE_CATKIN_PATH=/home/u/catkin_ws"},
		{"/home/u/my ws", "export BASE_CATKIN_PATH='/home/u/my ws'"},
		{"it's", `export BASE_CATKIN_PATH='it'\''s'`},
		{"", "export BASE_CATKIN_PATH=''"},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.expected, Export{Name: "BASE_CATKIN_PATH", Value: tc.value}.Line())
		})
	}
}

func TestWriter_AppendIsMonotonic(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/u", 0755))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.bashrc", []byte("alias ll='ls -l'\n"), 0644))

	w := NewWriter(fs, "/home/u/.bashrc")
	for i, ws := range []string{"/ws1", "/ws2", "/ws3"} {
		require.NoError(t, w.Append(Export{Name: "BASE_CATKIN_PATH", Value: ws}), "run %d", i)
	}

	data, err := afero.ReadFile(fs, "/home/u/.bashrc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "alias ll='ls -l'\n"))
	assert.Equal(t, 3, strings.Count(string(data), "export BASE_CATKIN_PATH="))

	exports, err := Read(fs, "/home/u/.bashrc")
	require.NoError(t, err)
	require.Len(t, exports, 3)
	assert.Equal(t, "/ws3", Effective(exports)["BASE_CATKIN_PATH"])
}

func TestWriter_AppendCreatesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/u", 0755))

	w := NewWriter(fs, "/home/u/.bashrc")
	require.NoError(t, w.Append(
		Export{Name: "ROBOT_CATKIN_PATH", Value: "/ws"},
		Export{Name: "ROBOT_PROJECT_CRUNCH_PATH", Value: "/opt/crunch"},
	))

	data, err := afero.ReadFile(fs, "/home/u/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "export ROBOT_CATKIN_PATH=/ws\nexport ROBOT_PROJECT_CRUNCH_PATH=/opt/crunch\n", string(data))
}

func TestWriter_AppendRejectsBadName(t *testing.T) {
	w := NewWriter(afero.NewMemMapFs(), "/.bashrc")
	assert.Error(t, w.Append(Export{Name: "1BAD", Value: "x"}))
	assert.Error(t, w.Append(Export{Name: "BAD-NAME", Value: "x"}))
}

func TestWriter_AppendReadOnlyFs(t *testing.T) {
	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/.bashrc")
	assert.Error(t, w.Append(Export{Name: "BASE_CATKIN_PATH", Value: "/ws"}))
}

func TestRead_MissingFile(t *testing.T) {
	exports, err := Read(afero.NewMemMapFs(), "/nope")
	assert.NoError(t, err)
	assert.Empty(t, exports)
}

func TestRead_RoundTripsQuotedValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/.bashrc")
	require.NoError(t, w.Append(Export{Name: "BASE_CATKIN_PATH", Value: "/home/u/it's a ws"}))

	values, err := Lookup(fs, "/.bashrc", "BASE_CATKIN_PATH", "ROBOT_CATKIN_PATH")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"BASE_CATKIN_PATH": "/home/u/it's a ws"}, values)
}

func TestParseLine(t *testing.T) {
	testCases := []struct {
		line string
		ok   bool
		want Export
	}{
		{"export A=1", true, Export{"A", "1"}},
		{"  export PATH_X=\"/a b\"", true, Export{"PATH_X", "/a b"}},
		{"# export A=1", false, Export{}},
		{"A=1", false, Export{}},
		{"export =1", false, Export{}},
		{"exporter A=1", false, Export{}},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			got, ok := parseLine(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
