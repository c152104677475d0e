package transform

import (
	"github.com/PuerkitoBio/goquery"

	"equinet/internal/domain"
)

const dyslexiaStyle = `
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<style>
  @font-face {
    font-family: 'OpenDyslexic';
    src: url('https://cdn.jsdelivr.net/gh/antijingoist/open-dyslexic@master/compiled/OpenDyslexic-Regular.otf') format('opentype');
    font-weight: normal;
    font-style: normal;
  }
  @font-face {
    font-family: 'OpenDyslexic';
    src: url('https://cdn.jsdelivr.net/gh/antijingoist/open-dyslexic@master/compiled/OpenDyslexic-Bold.otf') format('opentype');
    font-weight: bold;
    font-style: normal;
  }
  @font-face {
    font-family: 'OpenDyslexic';
    src: url('https://cdn.jsdelivr.net/gh/antijingoist/open-dyslexic@master/compiled/OpenDyslexic-Italic.otf') format('opentype');
    font-weight: normal;
    font-style: italic;
  }

  *, *::before, *::after {
    font-family: 'OpenDyslexic', 'Arial', sans-serif !important;
  }

  body {
    background: #fdf6e3 !important;
    color: #1a1a1a !important;
    max-width: 800px !important;
    margin: 0 auto !important;
    padding: 2rem !important;
  }

  p, li, td, dd, span, div {
    font-size: 1.15rem !important;
    line-height: 1.8 !important;
    letter-spacing: 0.03em !important;
    word-spacing: 0.08em !important;
  }

  h1 { font-size: 2rem !important; line-height: 1.4 !important; margin-bottom: 1rem !important; }
  h2 { font-size: 1.6rem !important; line-height: 1.4 !important; }
  h3 { font-size: 1.3rem !important; line-height: 1.4 !important; }

  a { color: #1a0dab !important; text-decoration: underline !important; }
  a:visited { color: #551a8b !important; }

  /* wide columns are harder for dyslexic readers */
  p { max-width: 70ch !important; }

  * { background-image: none !important; }
  body, main, article, section, div {
    background-color: transparent !important;
  }
  body { background-color: #fdf6e3 !important; }

  /* subtle ruler every other paragraph to aid line tracking */
  p:nth-child(odd) {
    background-color: rgba(0,0,0,0.025) !important;
    padding: 4px 8px !important;
    border-radius: 4px !important;
  }
</style>
`

const simplifiedStyle = `
<style>
  body { font-family: Georgia, serif !important; line-height: 1.8 !important; background: #fff !important; padding: 1.5rem !important; margin: 0 auto !important; max-width: 850px !important; }
  p, li, td, dd { font-size: 1.15rem !important; color: #1a1a1a !important; margin-bottom: 1.2rem !important; }
  h1 { font-size: 2rem !important; margin-bottom: 1.5rem !important; } h2 { font-size: 1.6rem !important; margin-top: 2rem !important; } h3 { font-size: 1.3rem !important; }
  a { color: #1d4ed8 !important; text-decoration: underline !important; }
  img { max-width: 100% !important; height: auto !important; border-radius: 8px !important; }
</style>
`

const translatedStyle = `
<link rel="preconnect" href="https://fonts.googleapis.com">
<link href="https://fonts.googleapis.com/css2?family=Noto+Sans+Tamil&display=swap" rel="stylesheet">
<style>
  body { font-family: 'Noto Sans Tamil', 'Latha', sans-serif !important; line-height: 2 !important; }
  p, li, td { font-size: 1.15rem !important; color: #1a1a1a !important; }
</style>
`

const noticeBanner = `
<div style="position:sticky;top:0;z-index:9999;background:#fef3c7;border-bottom:2px solid #f59e0b;padding:10px 16px;font-family:sans-serif;font-size:14px;color:#92400e;display:flex;align-items:center;gap:8px;">
  <span style="font-size:18px;">⚠️</span>
  <span><strong>AI simplification unavailable right now</strong> — showing the original page. The AI model may be busy; please try again in a moment.</span>
</div>
`

// appendModeStyle adds the stylesheet fragment for the chosen mode to the
// document head. Original mode gets no stylesheet.
func appendModeStyle(doc *goquery.Document, mode domain.Mode) {
	switch mode {
	case domain.ModeDyslexia:
		doc.Find("head").AppendHtml(dyslexiaStyle)
	case domain.ModeSimplified:
		doc.Find("head").AppendHtml(simplifiedStyle)
	case domain.ModeTranslated:
		doc.Find("head").AppendHtml(translatedStyle)
	}
}

// prependNoticeBanner tells the reader why the text looks unchanged after a
// failed simplification. Visible but non-blocking.
func prependNoticeBanner(doc *goquery.Document) {
	doc.Find("body").PrependHtml(noticeBanner)
}
