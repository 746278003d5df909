package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/dataset"
	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

// profileSampleSize bounds pattern detection cost on large columns: type and
// character-shape detection look at the first 100 non-null values only.
const profileSampleSize = 100

const (
	// typeDetectionThreshold is the minimum fraction of sampled values that
	// must parse for the date/numeric type checks to win.
	typeDetectionThreshold = 0.8
	// strictPatternThreshold is the minimum fraction of sampled values that
	// must be digit-only/alphanumeric for the corresponding boolean flags.
	strictPatternThreshold = 0.9
	// lowCardinalityPct marks a column low-cardinality when its uniqueness
	// percentage falls below it.
	lowCardinalityPct = 20.0
	// maxDistinctExamples caps the distinct values captured for
	// low-cardinality columns.
	maxDistinctExamples = 10
)

var alphanumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// dateLayouts are tried in order against sampled values. The label of the
// first layout matching the first parseable value becomes the profile's
// date_format.
var dateLayouts = []struct {
	layout string
	label  string
}{
	{"2006-01-02", "YYYY-MM-DD"},
	{"2006-01-02 15:04:05", "YYYY-MM-DD HH:MM:SS"},
	{time.RFC3339, "ISO 8601"},
	{"02/01/2006", "DD/MM/YYYY or MM/DD/YYYY"},
	{"01/02/2006", "DD/MM/YYYY or MM/DD/YYYY"},
	{"02-01-2006", "DD-MM-YYYY"},
}

// ColumnProfilerService computes the structural and statistical profile of a
// single column. Profiling never fails: unparseable values degrade the
// corresponding pattern ratios instead of raising errors.
type ColumnProfilerService interface {
	Profile(columnName string, cells []dataset.Cell) *models.ColumnProfile
}

type columnProfilerService struct {
	logger *zap.Logger
}

// NewColumnProfilerService creates a new column profiler service.
func NewColumnProfilerService(logger *zap.Logger) ColumnProfilerService {
	return &columnProfilerService{logger: logger.Named("column-profiler")}
}

// Profile builds the full ColumnProfile for one column.
func (s *columnProfilerService) Profile(columnName string, cells []dataset.Cell) *models.ColumnProfile {
	total := len(cells)

	profile := &models.ColumnProfile{
		ColumnName: columnName,
		Keywords:   extractKeywords(columnName),
		DataType:   models.DataTypeText,
	}

	nullCount := 0
	emptyCount := 0
	nonNull := make([]string, 0, total)
	distinct := make(map[string]struct{})
	distinctOrder := make([]string, 0)
	for _, cell := range cells {
		if cell.IsNull() {
			nullCount++
			continue
		}
		if cell.IsEmpty() {
			emptyCount++
		}
		v := cell.String()
		nonNull = append(nonNull, v)
		if _, seen := distinct[v]; !seen {
			distinct[v] = struct{}{}
			distinctOrder = append(distinctOrder, v)
		}
	}

	profile.TotalRecords = total
	profile.NonNullCount = len(nonNull)
	profile.UniqueCount = len(distinct)
	if total > 0 {
		profile.NullPercentage = round2(float64(nullCount) / float64(total) * 100)
		profile.EmptyPercentage = round2(float64(emptyCount) / float64(total) * 100)
		profile.UniquenessPercentage = round2(float64(len(distinct)) / float64(total) * 100)
	}

	if len(nonNull) == 0 {
		// All-null column: the zeroed profile already says everything there
		// is to say about it.
		return profile
	}

	sample := nonNull
	if len(sample) > profileSampleSize {
		sample = sample[:profileSampleSize]
	}

	profile.DataType = detectDataType(sample)
	s.detectCharacterShape(profile, sample)

	if profile.DataType.IsTextLike() {
		s.computeLengthStats(profile, nonNull)
	}
	if profile.UniquenessPercentage < lowCardinalityPct {
		profile.Patterns.LowCardinality = true
		examples := distinctOrder
		if len(examples) > maxDistinctExamples {
			examples = examples[:maxDistinctExamples]
		}
		profile.Patterns.DistinctValues = examples
	}
	if profile.DataType == models.DataTypeDate {
		profile.Patterns.DateFormat = detectDateFormat(sample)
	}
	if profile.DataType.IsNumeric() {
		s.computeNumericStats(profile, nonNull)
	}

	s.logger.Debug("Profiled column",
		zap.String("column", columnName),
		zap.String("data_type", string(profile.DataType)),
		zap.Float64("uniqueness_pct", profile.UniquenessPercentage),
		zap.Float64("null_pct", profile.NullPercentage))

	return profile
}

// detectDataType classifies the sample by attempting, in order, date parse,
// numeric parse, and the alphanumeric shape test, falling back to text.
func detectDataType(sample []string) models.DataType {
	dateHits := 0
	numericHits := 0
	fractional := false
	alnumHits := 0
	for _, v := range sample {
		trimmed := strings.TrimSpace(v)
		if parseDate(trimmed) != "" {
			dateHits++
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			numericHits++
			if f != math.Trunc(f) {
				fractional = true
			}
		}
		if alphanumericPattern.MatchString(trimmed) {
			alnumHits++
		}
	}

	n := float64(len(sample))
	switch {
	case float64(dateHits)/n >= typeDetectionThreshold:
		return models.DataTypeDate
	case float64(numericHits)/n >= typeDetectionThreshold:
		if fractional {
			return models.DataTypeDecimal
		}
		return models.DataTypeNumeric
	case float64(alnumHits)/n >= strictPatternThreshold:
		return models.DataTypeAlphanumeric
	default:
		return models.DataTypeText
	}
}

// detectCharacterShape computes the digit-only and alphanumeric sample ratios
// and their threshold booleans. These feed identifier eligibility, so they
// are computed for every data type.
func (s *columnProfilerService) detectCharacterShape(profile *models.ColumnProfile, sample []string) {
	digits := 0
	alnum := 0
	for _, v := range sample {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if isDigits(trimmed) {
			digits++
		}
		if alphanumericPattern.MatchString(trimmed) {
			alnum++
		}
	}

	n := float64(len(sample))
	profile.Patterns.DigitRatio = round2(float64(digits) / n)
	profile.Patterns.AlphanumericRatio = round2(float64(alnum) / n)
	profile.Patterns.OnlyDigits = profile.Patterns.DigitRatio >= strictPatternThreshold
	profile.Patterns.Alphanumeric = profile.Patterns.AlphanumericRatio >= strictPatternThreshold
}

// computeLengthStats fills the length statistics for text-like columns over
// all non-null values, plus the fixed/near-fixed length flags.
func (s *columnProfilerService) computeLengthStats(profile *models.ColumnProfile, values []string) {
	minLen := math.MaxInt
	maxLen := 0
	sum := 0
	lengths := make([]int, 0, len(values))
	for _, v := range values {
		l := len([]rune(v))
		lengths = append(lengths, l)
		sum += l
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}

	mean := float64(sum) / float64(len(lengths))
	variance := 0.0
	for _, l := range lengths {
		d := float64(l) - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(lengths)))

	avg := round2(mean)
	sd := round2(stddev)
	profile.Patterns.MinLength = &minLen
	profile.Patterns.MaxLength = &maxLen
	profile.Patterns.AvgLength = &avg
	profile.Patterns.LengthStdDev = &sd

	if minLen == maxLen {
		profile.Patterns.FixedLength = true
		profile.Patterns.FixedLengthValue = &maxLen
	} else if stddev < 1.0 {
		profile.Patterns.NearFixedLength = true
		typical := int(math.Round(mean))
		profile.Patterns.TypicalLength = &typical
	}
}

// computeNumericStats fills min/max/mean/median and the sign flags for
// numeric columns. Values that fail to parse are skipped.
func (s *columnProfilerService) computeNumericStats(profile *models.ColumnProfile, values []string) {
	parsed := make([]float64, 0, len(values))
	for _, v := range values {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			parsed = append(parsed, f)
		}
	}
	if len(parsed) == 0 {
		return
	}

	sort.Float64s(parsed)
	minV := parsed[0]
	maxV := parsed[len(parsed)-1]

	sum := 0.0
	for _, f := range parsed {
		sum += f
		switch {
		case f < 0:
			profile.Patterns.HasNegative = true
		case f == 0:
			profile.Patterns.HasZero = true
		default:
			profile.Patterns.HasPositive = true
		}
	}
	mean := round2(sum / float64(len(parsed)))

	mid := len(parsed) / 2
	median := parsed[mid]
	if len(parsed)%2 == 0 {
		median = (parsed[mid-1] + parsed[mid]) / 2
	}
	median = round2(median)

	profile.Patterns.MinValue = &minV
	profile.Patterns.MaxValue = &maxV
	profile.Patterns.MeanValue = &mean
	profile.Patterns.MedianValue = &median
}

// parseDate returns the label of the first layout that parses v, or "".
func parseDate(v string) string {
	if v == "" {
		return ""
	}
	for _, dl := range dateLayouts {
		if _, err := time.Parse(dl.layout, v); err == nil {
			return dl.label
		}
	}
	return ""
}

// detectDateFormat labels the column's date format from the first value that
// parses against a known layout.
func detectDateFormat(sample []string) string {
	for _, v := range sample {
		if label := parseDate(strings.TrimSpace(v)); label != "" {
			return label
		}
	}
	return "Unknown"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
