package scraper

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// extracted is the raw yield of one extraction strategy.
type extracted struct {
	Views    int64
	Likes    int64
	Comments int64
	Saves    int64
	Shares   int64
	Caption  string
	Cover    string
	PostDate string // ISO date
}

// An extractor inspects a page body and reports whether it found anything.
// Strategies never fail hard; "no match" just moves the engine to the next
// one.
type extractor func(body string) (*extracted, bool)

var extractors = []extractor{
	extractEmbeddedState,
	extractWithRegex,
}

// flexCount tolerates the platforms' habit of switching between numeric and
// string stat encodings ("collectCount":"1234" vs "playCount":5678).
type flexCount int64

func (c *flexCount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*c = flexCount(ParseCompactCount(s))
	return nil
}

type embeddedItem struct {
	Desc       string `json:"desc"`
	CreateTime string `json:"createTime"`
	Stats      struct {
		PlayCount    flexCount `json:"playCount"`
		DiggCount    flexCount `json:"diggCount"`
		CommentCount flexCount `json:"commentCount"`
		CollectCount flexCount `json:"collectCount"`
		ShareCount   flexCount `json:"shareCount"`
	} `json:"stats"`
	Video struct {
		Cover string `json:"cover"`
	} `json:"video"`
}

type embeddedState struct {
	ItemModule map[string]embeddedItem `json:"ItemModule"`
}

var stateScriptIDs = []string{
	"#SIGI_STATE",
	"#__UNIVERSAL_DATA_FOR_REHYDRATION__",
	"#RENDER_DATA",
}

// extractEmbeddedState reads the structured state blob video pages embed in
// a script tag and takes the first item found in it.
func extractEmbeddedState(body string) (*extracted, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, false
	}

	for _, sel := range stateScriptIDs {
		raw := strings.TrimSpace(doc.Find(sel).Text())
		if raw == "" {
			continue
		}

		var state embeddedState
		if err := json.Unmarshal([]byte(raw), &state); err != nil || len(state.ItemModule) == 0 {
			continue
		}

		for _, item := range state.ItemModule {
			result := &extracted{
				Views:    int64(item.Stats.PlayCount),
				Likes:    int64(item.Stats.DiggCount),
				Comments: int64(item.Stats.CommentCount),
				Saves:    int64(item.Stats.CollectCount),
				Shares:   int64(item.Stats.ShareCount),
				Caption:  item.Desc,
				Cover:    item.Video.Cover,
				PostDate: unixToISODate(item.CreateTime),
			}
			return result, true
		}
	}
	return nil, false
}

// Fallback regexes over the raw body; match both camelCase and snake_case
// stat keys, quoted or not, with compact count values.
var (
	reViews      = regexp.MustCompile(`"(?:playCount|play_count)"\s*:\s*"?([0-9.,]+[kKmM]?)"?`)
	reLikes      = regexp.MustCompile(`"(?:diggCount|digg_count|likeCount|like_count)"\s*:\s*"?([0-9.,]+[kKmM]?)"?`)
	reComments   = regexp.MustCompile(`"(?:commentCount|comment_count)"\s*:\s*"?([0-9.,]+[kKmM]?)"?`)
	reSaves      = regexp.MustCompile(`"(?:collectCount|collect_count|saveCount|save_count)"\s*:\s*"?([0-9.,]+[kKmM]?)"?`)
	reShares     = regexp.MustCompile(`"(?:shareCount|share_count)"\s*:\s*"?([0-9.,]+[kKmM]?)"?`)
	reCreateTime = regexp.MustCompile(`"(?:createTime|create_time)"\s*:\s*"?([0-9]{9,11})"?`)
)

func extractWithRegex(body string) (*extracted, bool) {
	result := &extracted{}
	found := false

	grab := func(re *regexp.Regexp, dst *int64) {
		if m := re.FindStringSubmatch(body); m != nil {
			*dst = ParseCompactCount(m[1])
			found = true
		}
	}
	grab(reViews, &result.Views)
	grab(reLikes, &result.Likes)
	grab(reComments, &result.Comments)
	grab(reSaves, &result.Saves)
	grab(reShares, &result.Shares)

	if m := reCreateTime.FindStringSubmatch(body); m != nil {
		result.PostDate = unixToISODate(m[1])
	}

	return result, found
}

func unixToISODate(raw string) string {
	sec, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || sec <= 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}
