package report

import (
	"fmt"
	"html/template"
	"io"
	"os"

	"blogpulse/internal/model"
)

// Palette for the top-author scatter, one color per author.
var palette = [TopAuthorCount]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

const scatterW, scatterH, scatterPad = 640, 400, 40

type scatterPoint struct {
	CX, CY  float64
	Color   string
	Author  string
	Tooltip string
}

type htmlData struct {
	Authors  []model.AuthorSummary
	Weekdays []model.WeekdaySummary
	Words    []model.WordCount
	Records  []model.Record
	Points   []scatterPoint
	Legend   []legendEntry
	W, H     int
}

type legendEntry struct {
	Author string
	Color  string
}

// WriteHTML renders the full report for records to path, overwriting any
// prior file. All views are recomputed from the record set.
func WriteHTML(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	if err := RenderHTML(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// RenderHTML writes the report document: a favorites-vs-retweets scatter of
// the top-author subset with hover tooltips, a sortable per-author summary
// table, the word-frequency table, and a sortable, paginated table of all
// records with linked titles. Search is deliberately disabled.
func RenderHTML(w io.Writer, records []model.Record) error {
	authors := ByAuthor(records)
	top := TopAuthors(authors, TopAuthorCount)
	subset := FilterByAuthors(records, top)

	colors := make(map[string]string, len(top))
	legend := make([]legendEntry, 0, len(top))
	for i, a := range top {
		colors[a] = palette[i%len(palette)]
		legend = append(legend, legendEntry{Author: a, Color: palette[i%len(palette)]})
	}
	maxFav, maxRT := 1, 1
	for _, r := range subset {
		if r.Favorites > maxFav {
			maxFav = r.Favorites
		}
		if r.Retweets > maxRT {
			maxRT = r.Retweets
		}
	}
	points := make([]scatterPoint, 0, len(subset))
	for _, r := range subset {
		cx := scatterPad + float64(r.Retweets)/float64(maxRT)*(scatterW-2*scatterPad)
		cy := scatterH - scatterPad - float64(r.Favorites)/float64(maxFav)*(scatterH-2*scatterPad)
		points = append(points, scatterPoint{
			CX:     cx,
			CY:     cy,
			Color:  colors[r.Author],
			Author: r.Author,
			Tooltip: fmt.Sprintf("%s\n%s · %s\nfavorites %d · retweets %d · score %d",
				r.Title, r.Author, r.Date.Format("2006-01-02"), r.Favorites, r.Retweets, r.Score),
		})
	}

	data := htmlData{
		Authors:  authors,
		Weekdays: ByWeekday(records),
		Words:    WordFrequency(records, WordTableSize),
		Records:  records,
		Points:   points,
		Legend:   legend,
		W:        scatterW,
		H:        scatterH,
	}
	return reportTmpl.Execute(w, data)
}

var reportTmpl = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>blogpulse report</title>
<style>
body { font: 14px/1.5 system-ui, sans-serif; margin: 2rem auto; max-width: 64rem; color: #222; }
h2 { margin-top: 2.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .3rem .6rem; border-bottom: 1px solid #ddd; }
th { cursor: pointer; user-select: none; background: #f5f5f5; }
th.sorted-asc::after { content: " ▲"; }
th.sorted-desc::after { content: " ▼"; }
.legend span { display: inline-block; margin-right: 1rem; }
.legend i { display: inline-block; width: .7rem; height: .7rem; border-radius: 50%; margin-right: .3rem; }
.pager { margin: .6rem 0; }
.pager button { margin-right: .4rem; }
circle { opacity: .75; }
circle:hover { opacity: 1; stroke: #000; }
</style>
</head>
<body>
<h1>blogpulse report</h1>

<h2>Top authors: favorites vs retweets</h2>
<div class="legend">
{{range .Legend}}<span><i style="background:{{.Color}}"></i>{{.Author}}</span>{{end}}
</div>
<svg viewBox="0 0 {{.W}} {{.H}}" width="{{.W}}" height="{{.H}}" role="img">
  <line x1="40" y1="{{.H}}" x2="{{.W}}" y2="{{.H}}" stroke="#999"/>
  <line x1="40" y1="0" x2="40" y2="{{.H}}" stroke="#999"/>
  {{range .Points}}<circle cx="{{printf "%.1f" .CX}}" cy="{{printf "%.1f" .CY}}" r="5" fill="{{.Color}}"><title>{{.Tooltip}}</title></circle>
  {{end}}
</svg>

<h2>Author summary</h2>
<table class="sortable" id="authors">
<thead><tr>
<th data-num="0">author</th><th data-num="1">num_tweets</th><th data-num="1">avg_favorites</th><th data-num="1">avg_retweets</th><th data-num="1">avg_score</th>
</tr></thead>
<tbody>
{{range .Authors}}<tr><td>{{.Author}}</td><td>{{.NumTweets}}</td><td>{{.AvgFavorites}}</td><td>{{.AvgRetweets}}</td><td>{{.AvgScore}}</td></tr>
{{end}}</tbody>
</table>

<h2>Posts by weekday</h2>
<table>
<thead><tr><th>day</th><th>num_tweets</th><th>avg_favorites</th><th>avg_retweets</th><th>avg_score</th></tr></thead>
<tbody>
{{range .Weekdays}}<tr><td>{{.Day}}</td><td>{{.NumTweets}}</td><td>{{.AvgFavorites}}</td><td>{{.AvgRetweets}}</td><td>{{.AvgScore}}</td></tr>
{{end}}</tbody>
</table>

<h2>Title words</h2>
<table class="sortable" id="words">
<thead><tr><th data-num="0">word</th><th data-num="1">count</th></tr></thead>
<tbody>
{{range .Words}}<tr><td>{{.Word}}</td><td>{{.Count}}</td></tr>
{{end}}</tbody>
</table>

<h2>All posts</h2>
<table class="sortable paged" id="records">
<thead><tr>
<th data-num="0">date</th><th data-num="0">title</th><th data-num="0">author</th><th data-num="1">retweets</th><th data-num="1">favorites</th><th data-num="1">score</th>
</tr></thead>
<tbody>
{{range .Records}}<tr><td>{{.Date.Format "2006-01-02"}}</td><td><a href="{{.URL}}">{{.Title}}</a></td><td>{{.Author}}</td><td>{{.Retweets}}</td><td>{{.Favorites}}</td><td>{{.Score}}</td></tr>
{{end}}</tbody>
</table>
<div class="pager" id="records-pager">
<button id="prev">prev</button><button id="next">next</button><span id="page"></span>
</div>

<script>
(function () {
	var PAGE = 25;
	function cellKey(row, i, num) {
		var t = row.cells[i].textContent.trim();
		return num ? parseFloat(t) || 0 : t.toLowerCase();
	}
	document.querySelectorAll("table.sortable").forEach(function (table) {
		var ths = table.tHead.rows[0].cells;
		Array.prototype.forEach.call(ths, function (th, i) {
			th.addEventListener("click", function () {
				var num = th.dataset.num === "1";
				var asc = !th.classList.contains("sorted-asc");
				Array.prototype.forEach.call(ths, function (h) { h.classList.remove("sorted-asc", "sorted-desc"); });
				th.classList.add(asc ? "sorted-asc" : "sorted-desc");
				var body = table.tBodies[0];
				var rows = Array.prototype.slice.call(body.rows);
				rows.sort(function (a, b) {
					var ka = cellKey(a, i, num), kb = cellKey(b, i, num);
					if (ka < kb) return asc ? -1 : 1;
					if (ka > kb) return asc ? 1 : -1;
					return 0;
				});
				rows.forEach(function (r) { body.appendChild(r); });
				if (table.classList.contains("paged")) page(table, 0);
			});
		});
	});
	function page(table, p) {
		var rows = table.tBodies[0].rows;
		var pages = Math.max(1, Math.ceil(rows.length / PAGE));
		p = Math.min(Math.max(p, 0), pages - 1);
		table.dataset.page = p;
		Array.prototype.forEach.call(rows, function (r, i) {
			r.style.display = (i >= p * PAGE && i < (p + 1) * PAGE) ? "" : "none";
		});
		document.getElementById("page").textContent = (p + 1) + " / " + pages;
	}
	var records = document.getElementById("records");
	if (records) {
		page(records, 0);
		document.getElementById("prev").addEventListener("click", function () { page(records, +records.dataset.page - 1); });
		document.getElementById("next").addEventListener("click", function () { page(records, +records.dataset.page + 1); });
	}
})();
</script>
</body>
</html>
`))
