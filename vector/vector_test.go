package vector_test

import (
	"strings"
	"testing"

	"github.com/bjaus/gwrite/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *vector.Document {
	doc := vector.NewDocument()
	doc.AddLayer(1, &vector.Layer{
		Lines: []vector.Line{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}},
	})
	return doc
}

func TestConvertLength(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		unit    string
		want    float64
		wantErr require.ErrorAssertionFunc
	}{
		"px":      {unit: "px", want: 1, wantErr: require.NoError},
		"in":      {unit: "in", want: 96, wantErr: require.NoError},
		"mm":      {unit: "mm", want: 96 / 25.4, wantErr: require.NoError},
		"cm":      {unit: "cm", want: 96 / 2.54, wantErr: require.NoError},
		"pt":      {unit: "pt", want: 96.0 / 72.0, wantErr: require.NoError},
		"unknown": {unit: "furlong", wantErr: require.Error},
		"empty":   {unit: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := vector.ConvertLength(tt.unit)
			tt.wantErr(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestConvertLengthUnknownIsSentinel(t *testing.T) {
	t.Parallel()
	_, err := vector.ConvertLength("parsec")
	assert.ErrorIs(t, err, vector.ErrUnknownUnit)
	assert.Contains(t, err.Error(), `"parsec"`)
}

func TestUnitsSorted(t *testing.T) {
	t.Parallel()
	u := vector.Units()
	assert.IsIncreasing(t, u)
	assert.Contains(t, u, "mm")
}

func TestDocumentOrder(t *testing.T) {
	t.Parallel()
	doc := vector.NewDocument()
	doc.AddLayer(3, &vector.Layer{})
	doc.AddLayer(1, &vector.Layer{})
	doc.AddLayer(2, &vector.Layer{})
	doc.AddLayer(1, &vector.Layer{Metadata: vector.Metadata{"replaced": true}})

	assert.Equal(t, []int{3, 1, 2}, doc.LayerIDs())
	assert.Equal(t, 3, doc.Len())

	var seen []int
	for id := range doc.Layers() {
		seen = append(seen, id)
	}
	assert.Equal(t, []int{3, 1, 2}, seen)

	l, ok := doc.Layer(1)
	require.True(t, ok)
	assert.Equal(t, true, l.Metadata["replaced"])
}

func TestBounds(t *testing.T) {
	t.Parallel()
	doc := square()
	doc.AddLayer(2, &vector.Layer{Lines: []vector.Line{{{X: -5, Y: 20}}}})

	b, ok := doc.Bounds()
	require.True(t, ok)
	assert.Equal(t, vector.Bounds{MinX: -5, MinY: 0, MaxX: 10, MaxY: 20}, b)

	b, ok = doc.Bounds(1)
	require.True(t, ok)
	assert.Equal(t, vector.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, b)
	assert.Equal(t, vector.Point{X: 5, Y: 5}, b.Center())
}

func TestBoundsEmpty(t *testing.T) {
	t.Parallel()
	doc := vector.NewDocument()
	_, ok := doc.Bounds()
	assert.False(t, ok)

	doc.AddLayer(1, &vector.Layer{Lines: []vector.Line{{}}})
	_, ok = doc.Bounds()
	assert.False(t, ok)

	_, ok = square().Bounds(42)
	assert.False(t, ok)
}

func TestScaleTranslate(t *testing.T) {
	t.Parallel()
	doc := square()
	doc.Scale(2, -1)
	doc.Translate(1, 1)
	l, _ := doc.Layer(1)
	assert.Equal(t, vector.Line{{X: 1, Y: 1}, {X: 21, Y: 1}, {X: 21, Y: -9}, {X: 1, Y: -9}}, l.Lines[0])
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	doc := square()
	doc.Metadata["name"] = "orig"
	l, _ := doc.Layer(1)
	l.Metadata = vector.Metadata{"vp_color": "red"}

	c := doc.Clone()
	c.Scale(10, 10)
	c.Metadata["name"] = "copy"
	cl, _ := c.Layer(1)
	cl.Metadata["vp_color"] = "blue"
	c.AddLayer(9, &vector.Layer{})

	assert.Equal(t, vector.Point{X: 10, Y: 0}, l.Lines[0][1])
	assert.Equal(t, "orig", doc.Metadata["name"])
	assert.Equal(t, "red", l.Metadata["vp_color"])
	assert.Equal(t, []int{1}, doc.LayerIDs())
	assert.Equal(t, vector.Point{X: 100, Y: 0}, cl.Lines[0][1])
}

func TestDecode(t *testing.T) {
	t.Parallel()
	src := `
metadata:
  vp_source: drawing.svg
layers:
  - id: 4
    metadata: {vp_color: "#0000ff"}
    lines:
      - [[0, 0], [10, 0.5]]
      - [[1, 1]]
  - lines:
      - [[2, 3]]
`
	doc, err := vector.Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "drawing.svg", doc.Metadata["vp_source"])
	assert.Equal(t, []int{4, 5}, doc.LayerIDs())

	l, _ := doc.Layer(4)
	assert.Equal(t, "#0000ff", l.Metadata["vp_color"])
	require.Len(t, l.Lines, 2)
	assert.Equal(t, vector.Line{{X: 0, Y: 0}, {X: 10, Y: 0.5}}, l.Lines[0])

	l, _ = doc.Layer(5)
	assert.Equal(t, vector.Line{{X: 2, Y: 3}}, l.Lines[0])
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()
	doc, err := vector.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"bad point":    "layers:\n  - lines:\n      - [[1, 2, 3]]\n",
		"duplicate id": "layers:\n  - id: 1\n  - id: 1\n",
		"not yaml":     "layers: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := vector.Decode(strings.NewReader(src))
			assert.ErrorIs(t, err, vector.ErrInvalidDocument)
		})
	}
}
