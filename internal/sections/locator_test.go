package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const proxyText = "Preamble text about the annual meeting.\n" +
	"PROPOSAL 1 - ELECTION OF DIRECTORS\n" +
	"John Smith, age 45. He received his M.B.A. from Boston University.\n" +
	"EXECUTIVE OFFICERS\n" +
	"Jane Doe, age 52. She serves as Chief Financial Officer.\n"

func TestLocate_FindsOrderedSections(t *testing.T) {
	secs := Locate(proxyText)
	require.Len(t, secs, 2)

	assert.Equal(t, "Election of Directors", secs[0].Label)
	assert.Equal(t, "Executive Officers", secs[1].Label)
	assert.Less(t, secs[0].Start, secs[1].Start)
}

func TestLocate_ExtentRunsToNextHeading(t *testing.T) {
	secs := Locate(proxyText)
	require.Len(t, secs, 2)

	assert.Contains(t, secs[0].Text, "John Smith")
	assert.NotContains(t, secs[0].Text, "Jane Doe")
	assert.Contains(t, secs[1].Text, "Jane Doe")
	assert.True(t, strings.HasSuffix(proxyText, secs[1].Text))
}

func TestLocate_SectionsAreContiguous(t *testing.T) {
	secs := Locate(proxyText)
	require.NotEmpty(t, secs)

	// The union of section texts reconstructs everything from the first
	// heading to the end of the document.
	var union strings.Builder
	for i, s := range secs {
		if i > 0 {
			assert.Equal(t, secs[i-1].Start+len(secs[i-1].Text), s.Start)
		}
		union.WriteString(s.Text)
	}
	assert.Equal(t, proxyText[secs[0].Start:], union.String())
}

func TestLocate_RepeatedHeadingYieldsTwoSections(t *testing.T) {
	text := "BOARD OF DIRECTORS\nFirst board block.\n" +
		"Unrelated amendment boilerplate.\n" +
		"BOARD OF DIRECTORS\nSecond board block.\n"

	secs := Locate(text)
	require.Len(t, secs, 2)

	assert.Equal(t, secs[0].Label, secs[1].Label)
	assert.NotEqual(t, secs[0].Start, secs[1].Start)
	assert.Contains(t, secs[0].Text, "First board block")
	assert.Contains(t, secs[1].Text, "Second board block")
}

func TestLocate_CaseInsensitive(t *testing.T) {
	secs := Locate("Some intro.\nBiographical Information\nDirector bios follow.")
	require.Len(t, secs, 1)

	assert.Equal(t, "Biographies", secs[0].Label)
}

func TestLocate_EnhancedPatterns(t *testing.T) {
	text := "NOMINEES FOR DIRECTOR\nAlpha bios.\n" +
		"CONTINUING DIRECTORS\nBeta bios.\n" +
		"MANAGEMENT DISCUSSION\nGamma prose.\n"

	secs := Locate(text)
	require.Len(t, secs, 3)

	assert.Equal(t, "Director Nominees", secs[0].Label)
	assert.Equal(t, "Continuing Directors", secs[1].Label)
	assert.Equal(t, "Management Discussion", secs[2].Label)
}

func TestLocate_Item10Heading(t *testing.T) {
	secs := Locate("Item 10. Directors, Executive Officers and Corporate Governance\nBio text.")
	require.NotEmpty(t, secs)

	assert.Equal(t, "Item 10: Directors & Officers", secs[0].Label)
}

func TestLocate_NoHeadings(t *testing.T) {
	assert.Empty(t, Locate("Nothing here resembles a relevant heading."))
}

func TestLocate_CoincidentMatchesCollapse(t *testing.T) {
	// "DIRECTORS AND EXECUTIVE OFFICERS" also contains "EXECUTIVE OFFICERS"
	// but at a later offset, so both rules fire at distinct positions; a
	// zero-length section must never appear.
	secs := Locate("DIRECTORS AND EXECUTIVE OFFICERS\nBios.")
	for _, s := range secs {
		assert.NotEmpty(t, s.Text)
	}
}

func TestLocateFromMarkup_EndToEnd(t *testing.T) {
	markup := `<html><body>
<p>Cover page.</p>
<p>ELECTION OF DIRECTORS is covered under PROPOSAL 2 - ELECTION OF DIRECTORS</p>
<p>Richard Roe, age 61. Director since 1999.</p>
</body></html>`

	secs, err := LocateFromMarkup(markup)
	require.NoError(t, err)
	require.NotEmpty(t, secs)

	assert.Contains(t, secs[len(secs)-1].Text, "Richard Roe")
}
