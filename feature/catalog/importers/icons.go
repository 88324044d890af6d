package importers

import (
	"fmt"
	"regexp"
	"strings"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
)

// The wiki item table has one row per item: an icon cell whose <img> sits
// directly inside a <span>, then a left-aligned name cell linking to the item
// page. Both cell shapes are unique to item rows.
var (
	wikiIconCell = regexp.MustCompile(`<tr style=""><td><span[^>]*><span><img alt="([^"]+)" [^>]* data-src="([^"]+)"`)
	wikiNameCell = regexp.MustCompile(`<td style="text-align:left"><a href="/wiki/([^"]+)" [^>]+>([^<]*)</a></td><td>`)
	wikiPNGPath  = regexp.MustCompile(`^` + regexp.QuoteMeta(models.WikiImageHost) + `(.*\.png)`)
)

// ImportWikiIcons extracts item icons from the HTML of the wiki item list.
// Icon paths are relative to models.WikiImageHost. Icons hosted elsewhere are
// logged and skipped.
func ImportWikiIcons(html string, log *zap.Logger) ([]models.NamedIcon, error) {
	log = logger.OrNop(log)
	html = strings.NewReplacer("\n", "", "\r", "").Replace(html)

	icons := wikiIconCell.FindAllStringSubmatch(html, -1)
	names := wikiNameCell.FindAllStringSubmatch(html, -1)
	if len(icons) != len(names) {
		return nil, fmt.Errorf("mismatched wiki table: %d names vs %d icons", len(names), len(icons))
	}

	out := make([]models.NamedIcon, 0, len(names))
	for i, m := range icons {
		url := m[2]
		path := wikiPNGPath.FindStringSubmatch(url)
		if path == nil {
			log.Warn("Unexpected icon url", zap.String("url", url), zap.String("alt", m[1]))
			continue
		}
		out = append(out, models.NamedIcon{Name: names[i][2], Path: path[1]})
	}

	log.Info("Imported wiki icons", zap.Int("icons", len(out)))
	return out, nil
}
