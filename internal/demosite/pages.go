package demosite

// allPages returns the built-in page set. Each page exercises a different
// combination of checks and accessibility tiers.
func allPages() map[string]string {
	return map[string]string{
		"/":           homePage,
		"/article":    articlePage,
		"/article-v2": articleCopyPage,
		"/gallery":    galleryPage,
		"/spa":        spaPage,
		"/bare":       barePage,
	}
}

// homePage is well structured: single H1, meta description, JSON-LD, lists
// and linked subpages.
const homePage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Beacon Demo Site</title>
<meta name="description" content="A small demonstration website with pages of varying machine readability, used to exercise every audit check the beacon tool performs.">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Organization","name":"Beacon Demo","url":"http://localhost:9999/"}
</script>
</head>
<body>
<h1>Welcome to the Beacon Demo Site</h1>
<p>This site exists so you can watch an audit find problems on purpose. Each page below is built differently, and each one scores differently.</p>
<ul>
<li><a href="/article">A well-structured article</a></li>
<li><a href="/article-v2">A near-duplicate of the article</a></li>
<li><a href="/gallery">A gallery with missing alt text</a></li>
<li><a href="/spa">A script-dependent shell</a></li>
<li><a href="/bare">A page with almost nothing on it</a></li>
</ul>
<p>Run the audit at depth two to reach every page from here. The duplicate pair should cluster, the gallery should flag its images, and the shell should land in the low tier.</p>
</body>
</html>`

// articlePage has rich structure and a high-value Article schema.
const articlePage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>How Automated Readers See Your Pages</title>
<meta name="description" content="Automated content consumers read markup, not pixels. This article walks through which HTML structures they parse easily and which ones they silently skip over.">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Article","headline":"How Automated Readers See Your Pages","author":{"@type":"Person","name":"Demo Author"}}
</script>
</head>
<body>
<h1>How Automated Readers See Your Pages</h1>
<h2>Structure wins</h2>
<p>Automated readers parse headings, paragraphs and lists directly. A page that says what it means in plain markup is a page that gets understood. Long passages of well-punctuated prose score well on readability because sentences stay short and words stay common.</p>
<h2>What gets skipped</h2>
<p>Canvas drawings, embedded video and content that only appears after scripts run are invisible to most automated consumers. If the point of the page lives there, the point of the page is lost.</p>
<ul>
<li>Use one clear main heading.</li>
<li>Describe images in alt text.</li>
<li>Declare your content type in structured data.</li>
</ul>
<p>None of this is exotic. It is the same advice that has applied to accessible markup for decades, applied to a new kind of reader.</p>
</body>
</html>`

// articleCopyPage shares most of its text with articlePage so the two
// cluster as near-duplicates.
const articleCopyPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>How Automated Readers See Your Pages (Updated)</title>
<meta name="description" content="Automated content consumers read markup, not pixels. This updated article walks through which HTML structures they parse easily and which ones they silently skip.">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Article","headline":"How Automated Readers See Your Pages (Updated)","author":{"@type":"Person","name":"Demo Author"}}
</script>
</head>
<body>
<h1>How Automated Readers See Your Pages (Updated)</h1>
<h2>Structure wins</h2>
<p>Automated readers parse headings, paragraphs and lists directly. A page that says what it means in plain markup is a page that gets understood. Long passages of well-punctuated prose score well on readability because sentences stay short and words stay common.</p>
<h2>What gets skipped</h2>
<p>Canvas drawings, embedded video and content that only appears after scripts run are invisible to most automated consumers. If the point of the page lives there, the point of the page is lost.</p>
<ul>
<li>Use one clear main heading.</li>
<li>Describe images in alt text.</li>
<li>Declare your content type in structured data.</li>
</ul>
<p>This revision adds nothing of substance, which is exactly why the duplicate detector should pair it with the original.</p>
</body>
</html>`

// galleryPage fails the alt-text check: five images, two described.
const galleryPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Gallery</title>
</head>
<body>
<h1>Gallery</h1>
<p>A handful of images, most of them missing their descriptions.</p>
<img src="/static/one.jpg" alt="A lighthouse at dusk">
<img src="/static/two.jpg" alt="Waves breaking on rocks">
<img src="/static/three.jpg">
<img src="/static/four.jpg">
<img src="/static/five.jpg">
</body>
</html>`

// spaPage is a script-dependent shell with no H1 and a noindex meta robots.
const spaPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>App</title>
<meta name="robots" content="noindex, nofollow">
</head>
<body>
<div id="root"></div>
<canvas id="chart"></canvas>
<script src="/static/bundle.js"></script>
</body>
</html>`

// barePage has minimal structure: no H1, no meta description, no schema.
const barePage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Untitled</title>
</head>
<body>
<p>Not much here.</p>
</body>
</html>`
