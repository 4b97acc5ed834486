package server

import (
	"html/template"
	"net/http"

	"github.com/fr4nk3nst1ner/salarysim/internal/ui"
)

type indexPage struct {
	Options       ui.Options
	Min           int
	Max           int
	Default       int
	IntervalLabel string
	NoDataMessage string
}

func (s *Service) indexHandler(w http.ResponseWriter, _ *http.Request) {
	page := indexPage{
		Options:       ui.NewOptions(s.index, s.policy.MinCategoryCount),
		Min:           s.policy.Min,
		Max:           s.policy.Max,
		Default:       s.policy.Default,
		IntervalLabel: ui.IntervalLabel,
		NoDataMessage: ui.NoDataMessage,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		s.log.WithError(err).Error("rendering index page failed", nil)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Salary Simulation</title>
	<style>
		:root {
			--bg-primary: #0a0a0f;
			--bg-secondary: #12121a;
			--accent-primary: #00ff88;
			--text-primary: #e8e8ed;
			--text-secondary: #8888a0;
			--border-color: #2a2a3a;
			--warning: #ffa502;
		}
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; background: var(--bg-primary); color: var(--text-primary); line-height: 1.6; }
		.container { max-width: 960px; margin: 0 auto; padding: 1.5rem; }
		header { text-align: center; padding: 1.5rem 0; border-bottom: 1px solid var(--border-color); margin-bottom: 1.5rem; }
		.logo { font-family: monospace; font-size: 2rem; font-weight: 700; color: var(--accent-primary); }
		.panel { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 12px; padding: 1.25rem; margin-bottom: 1.5rem; }
		label { display: block; color: var(--text-secondary); margin-top: .75rem; }
		select, input, button { width: 100%; padding: .5rem; background: var(--bg-primary); color: var(--text-primary); border: 1px solid var(--border-color); border-radius: 6px; }
		button { margin-top: 1rem; background: var(--accent-primary); color: var(--bg-primary); font-weight: 600; cursor: pointer; }
		.stat { font-family: monospace; font-size: 1.1rem; }
		.warning { color: var(--warning); }
		.bar-row { display: flex; align-items: center; font-family: monospace; font-size: .8rem; }
		.bar-label { width: 11rem; color: var(--text-secondary); }
		.bar { height: .8rem; background: var(--accent-primary); margin-right: .5rem; }
	</style>
</head>
<body>
<div class="container">
	<header>
		<div class="logo">$alarySim</div>
		<div>Salary distribution simulator</div>
	</header>

	<form class="panel" id="simulate">
		<label for="jobTitle">Job Title</label>
		<select id="jobTitle" name="jobTitle">
			{{range .Options.JobTitles}}<option value="{{.Value}}">{{.Value}} ({{.Count}})</option>{{end}}
		</select>
		<label for="experienceLevel">Experience Level</label>
		<select id="experienceLevel" name="experienceLevel">
			{{range .Options.ExperienceLevels}}<option value="{{.Value}}">{{.Value}} ({{.Count}})</option>{{end}}
		</select>
		<label for="remoteCategory">Remote</label>
		<select id="remoteCategory" name="remoteCategory">
			{{range .Options.RemoteCategories}}<option value="{{.}}">{{.}}</option>{{end}}
		</select>
		<label for="simulations">Number of Simulations</label>
		<input id="simulations" name="simulations" type="number" min="{{.Min}}" max="{{.Max}}" value="{{.Default}}">
		<button type="submit">Simulate</button>
	</form>

	<div class="panel" id="result" hidden></div>
</div>
<script>
const intervalLabel = {{.IntervalLabel}};
const noDataMessage = {{.NoDataMessage}};
const money = v => "$" + v.toLocaleString("en-US", {minimumFractionDigits: 2, maximumFractionDigits: 2});

document.getElementById("simulate").addEventListener("submit", async (e) => {
	e.preventDefault();
	const form = new FormData(e.target);
	const body = {
		jobTitle: form.get("jobTitle"),
		experienceLevel: form.get("experienceLevel"),
		remoteCategory: form.get("remoteCategory"),
		simulations: parseInt(form.get("simulations"), 10),
	};
	const out = document.getElementById("result");
	out.hidden = false;

	const resp = await fetch("/api/simulate", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)});
	const data = await resp.json();
	if (!resp.ok) {
		out.innerHTML = "";
		const msg = document.createElement("p");
		msg.className = "warning";
		msg.textContent = data.code === "NO_DATA" ? noDataMessage : data.message;
		out.appendChild(msg);
		return;
	}

	const top = Math.max(...data.histogram.bins.map(b => b.count));
	const rows = data.histogram.bins.map((b, i) => {
		const marks = [i === data.histogram.meanBin ? "mean" : "", i === data.histogram.medianBin ? "median" : ""].filter(Boolean).join(",");
		const width = top > 0 ? (b.count / top * 60) : 0;
		return '<div class="bar-row"><span class="bar-label">' + money(b.low) + '</span><span class="bar" style="width:' + width + '%"></span>' + b.count + (marks ? ' &lt;' + marks : '') + '</div>';
	}).join("");
	const bp = data.boxPlot;

	out.innerHTML =
		'<p class="stat">Mean Salary: ' + money(data.mean) + '</p>' +
		'<p class="stat">Median Salary: ' + money(data.median) + '</p>' +
		'<p class="stat">' + intervalLabel + ': ' + money(data.interval.low) + ' - ' + money(data.interval.high) + '</p>' +
		'<h3>Simulation Histogram</h3>' + rows +
		'<h3>Salary Distribution Box Plot</h3>' +
		'<p class="stat">Whiskers ' + money(bp.lowerWhisker) + ' / ' + money(bp.upperWhisker) +
		', Q1 ' + money(bp.q1) + ', Median ' + money(bp.median) + ', Q3 ' + money(bp.q3) +
		', Outliers ' + bp.outliers.length + '</p>';
});
</script>
</body>
</html>
`))
