package transform

import (
	"testing"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/filesystem"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRule(t *testing.T) {
	rule := Replace("setp tormach-console.0.rapid-override-scale 960", "#setp tormach-console.0.rapid-override-scale 960")
	env := Env{Marker: marker.RapidSlider}

	t.Run("replaces every occurrence", func(t *testing.T) {
		in := "setp tormach-console.0.rapid-override-scale 960\nx\nsetp tormach-console.0.rapid-override-scale 960\n"
		change, err := rule.Apply([]byte(in), env)
		require.NoError(t, err)
		line := "#setp tormach-console.0.rapid-override-scale 960 #Changed by PathPirate[rapid-slider]"
		assert.Equal(t, line+"\nx\n"+line+"\n", string(change.Content))
		assert.Equal(t, 1, change.Applied)
	})

	t.Run("missing pattern is a skip", func(t *testing.T) {
		change, err := rule.Apply([]byte("nothing here\n"), env)
		require.NoError(t, err)
		assert.Equal(t, "nothing here\n", string(change.Content))
		assert.Equal(t, 0, change.Applied)
		assert.Equal(t, 1, change.Skipped)
	})

	t.Run("no marker leaves new text bare", func(t *testing.T) {
		change, err := Replace("a", "b").Apply([]byte("a"), Env{})
		require.NoError(t, err)
		assert.Equal(t, "b", string(change.Content))
	})
}

func TestAppendRule(t *testing.T) {
	rule := Append("\n#added by {{.Marker}}\nsetp hm2_5i25.0.encoder.00.scale {{.EncoderScale}}")

	change, err := rule.Apply([]byte("loadrt x\n"), Env{Marker: marker.Encoder, Params: Params{EncoderScale: -1440}})
	require.NoError(t, err)
	assert.Equal(t, "loadrt x\n\n#added by PathPirate[encoder]\nsetp hm2_5i25.0.encoder.00.scale -1440", string(change.Content))
	assert.Equal(t, 1, change.Applied)
	assert.Equal(t, "append 3 lines", rule.Describe())
}

func TestAppendRulePanicsOnBadTemplate(t *testing.T) {
	assert.Panics(t, func() { Append("{{.Broken") })
}

func TestParseAppend(t *testing.T) {
	_, err := ParseAppend("{{.Broken")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransformRule))

	rule, err := ParseAppend("setp scale {{.EncoderScale}}\n")
	require.NoError(t, err)
	assert.Equal(t, KindAppend, rule.Kind())
}

func TestFileRule(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/bundle/MAXVEL_100.jpg", []byte("rapid"), 0644))

	t.Run("source", func(t *testing.T) {
		rule := ReplaceFile("/bundle/MAXVEL_100.jpg")
		change, err := rule.Apply([]byte("maxvel"), Env{FS: fs})
		require.NoError(t, err)
		assert.Equal(t, "rapid", string(change.Content))
		assert.Equal(t, 1, change.Applied)

		change, err = rule.Apply([]byte("rapid"), Env{FS: fs})
		require.NoError(t, err)
		assert.Equal(t, 1, change.Skipped)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := ReplaceFile("/bundle/absent.jpg").Apply([]byte("x"), Env{FS: fs})
		assert.Error(t, err)
	})

	t.Run("content", func(t *testing.T) {
		change, err := ReplaceWith("#!/usr/bin/tclsh8.6\n").Apply([]byte("#!/bin/sh\n"), Env{FS: fs})
		require.NoError(t, err)
		assert.Equal(t, "#!/usr/bin/tclsh8.6\n", string(change.Content))
	})
}

func TestRuleKinds(t *testing.T) {
	assert.Equal(t, KindReplace, Replace("a", "b").Kind())
	assert.Equal(t, KindAppend, Append("x").Kind())
	assert.Equal(t, KindFile, ReplaceWith("x").Kind())
	assert.Equal(t, KindSection, Sectioned().Kind())
}
