package version

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Bound is one side of a version interval. A bound specifies between one
// and three version digits and, only when fully specified, a pre-release
// identifier. Fewer than three digits act as a wildcard over the
// unspecified parts: the bound "0.1" admits every 0.1.x version, including
// pre-releases of those versions. A fully specified bound compares by the
// total version order, so the lower bound "0.2.1" does not admit
// "0.2.1-beta.1".
//
// The zero value is the unbounded bound "*", which admits every version on
// whichever side it is used.
type Bound struct {
	digits []uint64
	pre    string
}

// Unbounded returns the "*" bound.
func Unbounded() Bound {
	return Bound{}
}

// ZeroBound returns the bound "0", the canonical lower bound admitting
// every version.
func ZeroBound() Bound {
	return Bound{digits: []uint64{0}}
}

// BoundOf returns the fully specified bound for a registered version.
// Build metadata is dropped; it does not participate in ordering.
func BoundOf(v *Version) Bound {
	return Bound{digits: []uint64{v.Major(), v.Minor(), v.Patch()}, pre: v.Prerelease()}
}

// ParseBound parses a single bound: "*", or 1-3 dot-separated digits with
// an optional pre-release identifier after the third digit.
func ParseBound(s string) (Bound, error) {
	b, err := parseBound(s)
	if err != nil {
		return Bound{}, &ParseError{Input: s, Reason: err.Error()}
	}
	return b, nil
}

func parseBound(s string) (Bound, error) {
	if s == "" {
		return Bound{}, errors.New("empty bound")
	}
	if s == "*" {
		return Bound{}, nil
	}
	numPart, pre := s, ""
	if i := strings.IndexByte(s, '-'); i >= 0 {
		numPart, pre = s[:i], s[i+1:]
		if pre == "" {
			return Bound{}, errors.New("trailing hyphen")
		}
	}
	if numPart == "" {
		return Bound{}, errors.New("missing version digits")
	}
	parts := strings.Split(numPart, ".")
	if len(parts) > 3 {
		return Bound{}, fmt.Errorf("too many version parts in %q", numPart)
	}
	digits := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" {
			return Bound{}, fmt.Errorf("empty version part in %q", numPart)
		}
		if len(p) > 1 && p[0] == '0' {
			return Bound{}, fmt.Errorf("leading zero in version part %q", p)
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Bound{}, fmt.Errorf("version part %q is not a number", p)
		}
		digits[i] = n
	}
	if pre != "" {
		if len(digits) != 3 {
			return Bound{}, errors.New("pre-release bound requires major.minor.patch")
		}
		full := fmt.Sprintf("%d.%d.%d-%s", digits[0], digits[1], digits[2], pre)
		if _, err := semver.StrictNewVersion(full); err != nil {
			return Bound{}, fmt.Errorf("invalid pre-release %q", pre)
		}
	}
	return Bound{digits: digits, pre: pre}, nil
}

// IsUnbounded reports whether b is the "*" bound.
func (b Bound) IsUnbounded() bool {
	return len(b.digits) == 0
}

// String renders the bound in its canonical text form.
func (b Bound) String() string {
	if b.IsUnbounded() {
		return "*"
	}
	parts := make([]string, len(b.digits))
	for i, d := range b.digits {
		parts[i] = strconv.FormatUint(d, 10)
	}
	s := strings.Join(parts, ".")
	if b.pre != "" {
		s += "-" + b.pre
	}
	return s
}

func (b Bound) equal(o Bound) bool {
	return slices.Equal(b.digits, o.digits) && b.pre == o.pre
}

// version materializes a fully specified bound as a Version.
func (b Bound) version() *Version {
	return semver.New(b.digits[0], b.digits[1], b.digits[2], b.pre, "")
}

// cmpPrefix compares the bound's specified digits against the leading
// digits of v, ignoring pre-release tags. Used for wildcard bounds only.
func (b Bound) cmpPrefix(v *Version) int {
	vd := [3]uint64{v.Major(), v.Minor(), v.Patch()}
	for i, d := range b.digits {
		switch {
		case d < vd[i]:
			return -1
		case d > vd[i]:
			return 1
		}
	}
	return 0
}

// satisfiesLower reports v >= b.
func (b Bound) satisfiesLower(v *Version) bool {
	if b.IsUnbounded() {
		return true
	}
	if len(b.digits) == 3 {
		return v.Compare(b.version()) >= 0
	}
	return b.cmpPrefix(v) <= 0
}

// satisfiesUpper reports v <= b.
func (b Bound) satisfiesUpper(v *Version) bool {
	if b.IsUnbounded() {
		return true
	}
	if len(b.digits) == 3 {
		return v.Compare(b.version()) <= 0
	}
	return b.cmpPrefix(v) >= 0
}

// isZeroLower reports whether b, used as a lower bound, admits every
// version. True for "*" and for all-zero wildcard bounds like "0" or
// "0.0". The fully specified "0.0.0" is excluded: as a lower bound it
// rejects pre-releases of 0.0.0, so it is not equivalent to "0".
func (b Bound) isZeroLower() bool {
	if b.IsUnbounded() {
		return true
	}
	if len(b.digits) == 3 || b.pre != "" {
		return false
	}
	for _, d := range b.digits {
		if d != 0 {
			return false
		}
	}
	return true
}

// boundKey is a comparable position on the version line: the smallest
// version a lower bound admits, or the largest an upper bound admits.
type boundKey struct {
	inf  int // -1 below everything, +1 above everything, 0 finite
	d    [3]uint64
	rank int // 0 pre-release floor, 1 pre-release, 2 release
	pre  string
}

func lowerKey(b Bound) boundKey {
	if b.IsUnbounded() {
		return boundKey{inf: -1}
	}
	k := boundKey{}
	copy(k.d[:], b.digits)
	switch {
	case len(b.digits) < 3:
		k.rank = 0 // wildcard admits pre-releases of its padded version
	case b.pre != "":
		k.rank = 1
		k.pre = b.pre
	default:
		k.rank = 2
	}
	return k
}

func upperKey(b Bound) boundKey {
	if b.IsUnbounded() {
		return boundKey{inf: 1}
	}
	k := boundKey{d: [3]uint64{math.MaxUint64, math.MaxUint64, math.MaxUint64}}
	copy(k.d[:], b.digits)
	switch {
	case len(b.digits) < 3:
		k.rank = 2
	case b.pre != "":
		k.rank = 1
		k.pre = b.pre
	default:
		k.rank = 2
	}
	return k
}

func compareKeys(a, b boundKey) int {
	if a.inf != b.inf {
		if a.inf < b.inf {
			return -1
		}
		return 1
	}
	if a.inf != 0 {
		return 0
	}
	for i := range a.d {
		switch {
		case a.d[i] < b.d[i]:
			return -1
		case a.d[i] > b.d[i]:
			return 1
		}
	}
	if a.rank != b.rank {
		if a.rank < b.rank {
			return -1
		}
		return 1
	}
	if a.rank == 1 && a.pre != b.pre {
		return comparePrerelease(a.pre, b.pre)
	}
	return 0
}

// comparePrerelease compares dot-separated pre-release identifier lists
// per semver precedence: numeric identifiers compare numerically and sort
// before alphanumeric ones; a shorter list that is a prefix sorts first.
func comparePrerelease(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for i := range min(len(aParts), len(bParts)) {
		aNum, aIsNum := tryParseUint(aParts[i])
		bNum, bIsNum := tryParseUint(bParts[i])

		switch {
		case aIsNum && bIsNum:
			if aNum != bNum {
				if aNum < bNum {
					return -1
				}
				return 1
			}
		case aIsNum:
			return -1
		case bIsNum:
			return 1
		default:
			if c := strings.Compare(aParts[i], bParts[i]); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(aParts) < len(bParts):
		return -1
	case len(aParts) > len(bParts):
		return 1
	}
	return 0
}

func tryParseUint(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	return n, err == nil
}

// Interval is a closed version range [Lo, Hi]. An unbounded Hi means "no
// upper limit".
type Interval struct {
	Lo Bound
	Hi Bound
}

// FullInterval returns the interval covering every version.
func FullInterval() Interval {
	return Interval{Lo: ZeroBound(), Hi: Unbounded()}
}

// Contains reports whether v falls within the interval.
func (iv Interval) Contains(v *Version) bool {
	return iv.Lo.satisfiesLower(v) && iv.Hi.satisfiesUpper(v)
}

// Equal reports structural equality of the (canonicalized) intervals.
func (iv Interval) Equal(o Interval) bool {
	return iv.Lo.equal(o.Lo) && iv.Hi.equal(o.Hi)
}

func (iv Interval) isEmpty() bool {
	return compareKeys(lowerKey(iv.Lo), upperKey(iv.Hi)) > 0
}

// canonInterval rewrites lower bounds that admit everything to the
// canonical "0", so that structural equality matches semantic equality.
func canonInterval(iv Interval) Interval {
	if iv.Lo.isZeroLower() {
		iv.Lo = ZeroBound()
	}
	return iv
}

// CompareIntervals orders intervals by lower bound, then upper bound.
func CompareIntervals(a, b Interval) int {
	if c := compareKeys(lowerKey(a.Lo), lowerKey(b.Lo)); c != 0 {
		return c
	}
	return compareKeys(upperKey(a.Hi), upperKey(b.Hi))
}

// splitPair attempts to read s as a bound pair: the unambiguous spaced
// form "lo - hi", or "lo-hi" split at the leftmost hyphen followed by a
// digit or "*" where both halves parse as bounds. ok is false when s has
// no pair structure at all (the caller should try a single bound).
func splitPair(s string) (lo, hi Bound, ok bool, err error) {
	if before, after, found := strings.Cut(s, " - "); found {
		lo, err = parseBound(before)
		if err != nil {
			return Bound{}, Bound{}, true, err
		}
		hi, err = parseBound(after)
		if err != nil {
			return Bound{}, Bound{}, true, err
		}
		return lo, hi, true, nil
	}
	for i := 1; i+1 < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		c := s[i+1]
		if c != '*' && (c < '0' || c > '9') {
			continue
		}
		l, errL := parseBound(s[:i])
		h, errR := parseBound(s[i+1:])
		if errL == nil && errR == nil {
			return l, h, true, nil
		}
	}
	return Bound{}, Bound{}, false, nil
}

// parseClause parses one requirement clause: "*", a single bound (a point
// range such as "0.1", covering every 0.1.x), or a bound pair.
func parseClause(s string) (Interval, error) {
	if s == "" {
		return Interval{}, errors.New("empty clause")
	}
	if s == "*" {
		return FullInterval(), nil
	}
	lo, hi, ok, err := splitPair(s)
	if err != nil {
		return Interval{}, err
	}
	var iv Interval
	if ok {
		iv = Interval{Lo: lo, Hi: hi}
	} else {
		b, err := parseBound(s)
		if err != nil {
			return Interval{}, err
		}
		iv = Interval{Lo: b, Hi: b}
	}
	if iv.isEmpty() {
		return Interval{}, fmt.Errorf("range %q is empty", s)
	}
	return canonInterval(iv), nil
}

// ParseWindow parses a section window key. A bare bound means "from that
// bound, unbounded above"; a pair is a closed window. The syntax is the
// same bound syntax requirements use, including pre-release suffixes.
func ParseWindow(key string) (Interval, error) {
	if key == "" {
		return Interval{}, &ParseError{Input: key, Reason: "empty window key"}
	}
	if key == "*" {
		return FullInterval(), nil
	}
	lo, hi, ok, err := splitPair(key)
	if err != nil {
		return Interval{}, &ParseError{Input: key, Reason: err.Error()}
	}
	var iv Interval
	if ok {
		iv = Interval{Lo: lo, Hi: hi}
	} else {
		b, err := parseBound(key)
		if err != nil {
			return Interval{}, &ParseError{Input: key, Reason: err.Error()}
		}
		iv = Interval{Lo: b, Hi: Unbounded()}
	}
	if iv.isEmpty() {
		return Interval{}, &ParseError{Input: key, Reason: "window is empty"}
	}
	return canonInterval(iv), nil
}

// Key renders the interval as a section window key that ParseWindow
// reads back to the same interval. Unbounded windows use the bare lower
// bound; bounded windows with pre-release bounds use the spaced form,
// since a hyphen split of e.g. "1.2.3-4.5.6-7" is ambiguous. The render
// is self-checking: any form that fails to round-trip falls back to the
// spaced pair.
func (iv Interval) Key() string {
	iv = canonInterval(iv)
	var k string
	switch {
	case iv.Hi.IsUnbounded():
		k = iv.Lo.String()
	case iv.Lo.pre != "" || iv.Hi.pre != "":
		k = iv.Lo.String() + " - " + iv.Hi.String()
	default:
		k = iv.Lo.String() + "-" + iv.Hi.String()
	}
	if w, err := ParseWindow(k); err != nil || !w.Equal(iv) {
		k = iv.Lo.String() + " - " + iv.Hi.String()
	}
	return k
}

// clauseString renders the interval as a requirement clause.
func (iv Interval) clauseString() string {
	if iv.Lo.equal(ZeroBound()) && iv.Hi.IsUnbounded() {
		return "*"
	}
	if iv.Lo.equal(iv.Hi) {
		s := iv.Lo.String()
		if got, err := parseClause(s); err == nil && got.Equal(iv) {
			return s
		}
		return iv.Lo.String() + " - " + iv.Hi.String()
	}
	if iv.Hi.IsUnbounded() {
		return iv.Lo.String() + "-*"
	}
	if iv.Lo.pre != "" || iv.Hi.pre != "" {
		return iv.Lo.String() + " - " + iv.Hi.String()
	}
	return iv.Lo.String() + "-" + iv.Hi.String()
}

// RangeSet is a normalized union of disjoint closed intervals: sorted,
// non-empty, non-overlapping, with mergeable neighbors merged. Two
// RangeSets denoting the same set of versions are structurally equal
// regardless of the input strings that produced them.
type RangeSet struct {
	intervals []Interval
}

// NewRangeSet builds a RangeSet from intervals, normalizing them.
func NewRangeSet(ivs ...Interval) *RangeSet {
	return &RangeSet{intervals: normalize(ivs)}
}

// ParseRange parses a requirement string: comma-separated clauses, each a
// bound or bound pair, unioned together. "0.1, 0.2" and "0.1-0.2"
// normalize to the same RangeSet.
func ParseRange(s string) (*RangeSet, error) {
	clauses := strings.Split(s, ",")
	ivs := make([]Interval, 0, len(clauses))
	for _, raw := range clauses {
		clause := strings.TrimSpace(raw)
		iv, err := parseClause(clause)
		if err != nil {
			return nil, &ParseError{Input: s, Clause: clause, Reason: err.Error()}
		}
		ivs = append(ivs, iv)
	}
	return &RangeSet{intervals: normalize(ivs)}, nil
}

// MustParseRange parses a requirement or panics. Use only for tests.
func MustParseRange(s string) *RangeSet {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// normalize sorts intervals and merges overlapping or adjacent ones.
func normalize(ivs []Interval) []Interval {
	work := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		iv = canonInterval(iv)
		if !iv.isEmpty() {
			work = append(work, iv)
		}
	}
	slices.SortFunc(work, CompareIntervals)

	var merged []Interval
	for _, iv := range work {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if compareKeys(lowerKey(iv.Lo), upperKey(last.Hi)) <= 0 || adjacentBounds(last.Hi, iv.Lo) {
				if compareKeys(upperKey(iv.Hi), upperKey(last.Hi)) > 0 {
					last.Hi = iv.Hi
				}
				continue
			}
		}
		merged = append(merged, iv)
	}
	return merged
}

// adjacentBounds reports whether an interval ending at hi touches one
// starting at lo with no version in between. Only wildcard bounds of the
// same specificity can be adjacent ("0.1" then "0.2"): fully specified
// neighbors like "0.1.0" and "0.1.1" leave a gap, because pre-releases of
// 0.1.1 sort between them.
func adjacentBounds(hi, lo Bound) bool {
	if hi.IsUnbounded() || lo.IsUnbounded() {
		return false
	}
	if hi.pre != "" || lo.pre != "" {
		return false
	}
	n := len(hi.digits)
	if n != len(lo.digits) || n == 3 {
		return false
	}
	for i := range n - 1 {
		if hi.digits[i] != lo.digits[i] {
			return false
		}
	}
	return lo.digits[n-1] == hi.digits[n-1]+1
}

// Contains reports whether v satisfies the requirement.
func (r *RangeSet) Contains(v *Version) bool {
	if r == nil {
		return false
	}
	for _, iv := range r.intervals {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

// Union returns the requirement satisfied by either input.
func (r *RangeSet) Union(o *RangeSet) *RangeSet {
	switch {
	case r == nil:
		return o
	case o == nil:
		return r
	}
	return &RangeSet{intervals: normalize(slices.Concat(r.intervals, o.intervals))}
}

// Equal reports semantic equality: both sets admit exactly the same
// versions. Normalization makes this a structural comparison.
func (r *RangeSet) Equal(o *RangeSet) bool {
	if r == nil || o == nil {
		return r == o
	}
	return slices.EqualFunc(r.intervals, o.intervals, Interval.Equal)
}

// String renders the canonical compact form: contiguous unions as
// "lo-hi", point ranges as a bare bound, disjoint pieces comma-joined.
// Deterministic for semantically equal inputs.
func (r *RangeSet) String() string {
	if r == nil || len(r.intervals) == 0 {
		return ""
	}
	clauses := make([]string, len(r.intervals))
	for i, iv := range r.intervals {
		clauses[i] = iv.clauseString()
	}
	return strings.Join(clauses, ", ")
}
