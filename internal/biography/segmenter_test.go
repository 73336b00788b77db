package biography

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_NameAgeTier(t *testing.T) {
	text := "John Smith, age 45. He received his M.B.A. from Boston University in 2005 " +
		"and later served as Professor of Finance.\n" +
		"Jane Doe, age 52. She has been a director of the company since 2010 and " +
		"previously worked in investment banking."

	bios := Segment(text)
	require.Len(t, bios, 2)

	assert.Equal(t, "John Smith", bios[0].Name)
	assert.Equal(t, "45", bios[0].Age)
	assert.Contains(t, bios[0].Text, "M.B.A.")
	assert.NotContains(t, bios[0].Text, "Jane Doe")

	assert.Equal(t, "Jane Doe", bios[1].Name)
	assert.Equal(t, "52", bios[1].Age)
}

func TestSegment_AgeWithoutKeyword(t *testing.T) {
	text := "Richard K. Roe, 61, has served as Chairman of the Board since 1999 and " +
		"brings decades of operating experience to the company."

	bios := Segment(text)
	require.Len(t, bios, 1)

	assert.Equal(t, "Richard K. Roe", bios[0].Name)
	assert.Equal(t, "61", bios[0].Age)
}

func TestSegment_NameTitleTierFallback(t *testing.T) {
	text := "Mary Johnson, Director of the company, has served on the board since 2015. " +
		"She previously led the audit committee and worked at a large accounting firm."

	bios := Segment(text)
	require.Len(t, bios, 1)

	assert.Equal(t, "Mary Johnson", bios[0].Name)
	assert.Equal(t, UnknownAge, bios[0].Age)
}

func TestSegment_TiersNeverMix(t *testing.T) {
	// One name+age match and one name+title match: tier 1 wins outright and
	// the title-only person is absorbed into the preceding record.
	text := "Alan Turing, age 41. Mathematician and computer scientist with extensive " +
		"research experience in early computing machinery at several institutions.\n" +
		"Grace Hopper, Director, has served on the board since 2019 and previously " +
		"taught at a service academy for many years."

	bios := Segment(text)
	require.Len(t, bios, 1)

	assert.Equal(t, "Alan Turing", bios[0].Name)
	assert.Equal(t, "41", bios[0].Age)
}

func TestSegment_ParagraphTier(t *testing.T) {
	text := "William Henry Gates has been a member of our board since its founding. " +
		"He brings significant experience in technology strategy and philanthropy.\n\n" +
		"The committee met four times during the fiscal year to review related matters " +
		"and to discuss the results of the annual audit with outside counsel."

	bios := Segment(text)
	require.Len(t, bios, 1)

	assert.Equal(t, "William Henry Gates", bios[0].Name)
	assert.Equal(t, UnknownAge, bios[0].Age)
}

func TestSegment_ParagraphTierSingleNewlines(t *testing.T) {
	// Normalized text uses single newlines as block boundaries.
	text := "Ada King Lovelace pioneered analytical methods and currently advises the " +
		"company on long-range research strategy across multiple divisions worldwide.\n" +
		"Pursuant to the plan, the board adopted amendments described under Item 5 of " +
		"this report, none of which affect previously reported financial results."

	bios := Segment(text)
	require.Len(t, bios, 1)

	assert.Equal(t, "Ada King Lovelace", bios[0].Name)
}

func TestSegment_RejectsOrganizationNames(t *testing.T) {
	text := "New York Stock Exchange, age 50. This is obviously not a person biography " +
		"but the pattern shape matches, so the stoplist has to catch it here."

	for _, bio := range Segment(text) {
		assert.NotContains(t, strings.ToLower(bio.Name), "stock exchange")
	}
}

func TestSegment_RejectsAllCapsHeadings(t *testing.T) {
	assert.False(t, isLikelyPersonName("BOARD OF DIRECTORS"))
	assert.False(t, isLikelyPersonName("NYSE American LLC"))
	assert.True(t, isLikelyPersonName("John Smith"))
}

func TestSegment_BioTextCapped(t *testing.T) {
	text := "John Smith, age 45. " + strings.Repeat("Very long biography text. ", 200)

	bios := Segment(text)
	require.Len(t, bios, 1)

	assert.LessOrEqual(t, len(bios[0].Text), MaxBioLen)
}

func TestSegment_EmptyText(t *testing.T) {
	assert.Empty(t, Segment(""))
}

func TestSegment_NoDetectableNames(t *testing.T) {
	text := "The following table sets forth certain information regarding beneficial " +
		"ownership of our common stock as of the record date for the meeting."

	assert.Empty(t, Segment(text))
}

func TestNewWithTitles_CustomTitleSet(t *testing.T) {
	seg := NewWithTitles([]string{"Provost"})
	text := "Carol Chen, Provost, joined our advisory board in 2021 after a long " +
		"academic career spanning three decades at research universities."

	bios := seg.Segment(text)
	require.Len(t, bios, 1)
	assert.Equal(t, "Carol Chen", bios[0].Name)
}
