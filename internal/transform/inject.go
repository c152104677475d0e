package transform

import "github.com/PuerkitoBio/goquery"

// controllerScript is the in-frame accessibility controller. It is a small
// event-driven state machine reacting to three cross-frame messages:
//
//	REQUEST_READABLE_TEXT — reply to the sender with the page's plain text
//	FOCUS_ON              — pause playing media, freeze animated images,
//	                        halt CSS animations and transitions
//	FOCUS_OFF             — reverse all of the above symmetrically
//
// Focus state lives in one explicit object (active flag plus the sets of
// media and images this controller touched), so repeated FOCUS_ON messages
// are no-ops and FOCUS_OFF restores exactly the elements that were changed.
const controllerScript = `
<script>
(function() {
  var state = { active: false, pausedMedia: [], frozenImages: [] };

  window.addEventListener('message', function(e) {
    if (e.data === 'REQUEST_READABLE_TEXT') {
      var text = document.body ? document.body.innerText : '';
      e.source.postMessage({ type: 'READABLE_TEXT', text: text }, e.origin || '*');
    }
    if (e.data === 'FOCUS_ON') { enterFocus(); }
    if (e.data === 'FOCUS_OFF') { exitFocus(); }
  });

  function enterFocus() {
    if (state.active) { return; }
    state.active = true;

    document.querySelectorAll('video, audio').forEach(function(media) {
      if (!media.paused) {
        media.pause();
        state.pausedMedia.push(media);
      }
    });

    document.querySelectorAll('img').forEach(function(img) {
      if (!img.src || img.src.toLowerCase().indexOf('.gif') === -1) { return; }
      try {
        var canvas = document.createElement('canvas');
        canvas.width = img.naturalWidth || img.width;
        canvas.height = img.naturalHeight || img.height;
        var ctx = canvas.getContext('2d');
        if (!ctx) { return; }
        ctx.drawImage(img, 0, 0);
        state.frozenImages.push({ el: img, src: img.src });
        img.src = canvas.toDataURL();
      } catch (err) {
        // cross-origin images taint the canvas and throw; leave them animated
      }
    });

    var style = document.createElement('style');
    style.id = 'equinet-focus-style';
    style.textContent = '*, *::before, *::after { animation-play-state: paused !important; transition: none !important; }';
    document.head.appendChild(style);
  }

  function exitFocus() {
    if (!state.active) { return; }
    state.active = false;

    state.pausedMedia.forEach(function(media) { media.play(); });
    state.pausedMedia = [];

    state.frozenImages.forEach(function(frozen) { frozen.el.src = frozen.src; });
    state.frozenImages = [];

    var style = document.getElementById('equinet-focus-style');
    if (style) { style.remove(); }
  }
})();
</script>
`

// injectControllerScript appends the controller to the document body. This
// is the only script the gateway ever serves; everything remote was stripped
// earlier in the pipeline.
func injectControllerScript(doc *goquery.Document) {
	doc.Find("body").AppendHtml(controllerScript)
}
