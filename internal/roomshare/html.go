package roomshare

// continuationActionID marks the "load more" POST as a server action call.
// Only the header's presence matters to the routing layer; the value mimics
// the 40-hex action ids the real framework generates.
const continuationActionID = "6f1c9a4be2d7035f8a61c04de9b2277c315d80aa"

// searchPageHTML is the fixture's search page. The markup mirrors what the
// suite's selectors expect from the real app: listing cards, the destination
// input, the Filters button, the load-more button with its error/retry state,
// and the map summary pane. The inline script is the browser half of the
// action-reply framing: it must parse exactly the two-row frames produced by
// EncodeActionReply.
const searchPageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Roomshare — Find a room</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; }
  header { display: flex; gap: 1rem; padding: 1rem; border-bottom: 1px solid #ddd; }
  main { display: flex; }
  #results { flex: 2; display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; padding: 1rem; }
  aside { flex: 1; padding: 1rem; background: #f6f6f6; }
  article { border: 1px solid #eee; border-radius: 8px; padding: 0.75rem; }
  [hidden] { display: none !important; }
</style>
</head>
<body>
<header>
  <input type="search" placeholder="Search destinations">
  <button type="button">Filters</button>
  <nav>
    <a href="/search?city=Austin%2C%20TX">Austin, TX</a>
    <a href="/search?city=Denver%2C%20CO">Denver, CO</a>
    <a href="/search?city=Portland%2C%20OR">Portland, OR</a>
    <a href="/search?city=Chicago%2C%20IL">Chicago, IL</a>
  </nav>
</header>
<main>
  <section id="results">
  {{- range .Listings}}
    <article data-testid="listing-card" data-listing-id="{{.ID}}">
      <h3>{{.Title}}</h3>
      <p class="price">${{.Price}}/mo</p>
      <p class="room-type">{{.RoomType}}</p>
    </article>
  {{- end}}
  </section>
  <aside>
    <h2>Map</h2>
    <p>mode: <span data-testid="map-mode"></span></p>
    <p>pins: <span data-testid="map-pin-count"></span></p>
  </aside>
</main>
<footer>
  <button type="button" data-testid="load-more" {{if not .HasNext}}hidden{{end}}>Load more</button>
  <div data-testid="load-more-error" hidden>
    Couldn&#39;t load more rooms.
    <button type="button" data-testid="retry">Retry</button>
  </div>
</footer>
<script>
(function () {
  let cursor = {{.NextCursor}};
  const results = document.getElementById('results');
  const loadBtn = document.querySelector('[data-testid=load-more]');
  const errBox = document.querySelector('[data-testid=load-more-error]');
  const retryBtn = document.querySelector('[data-testid=retry]');

  function parseActionReply(text) {
    const rows = text.replace(/\n+$/, '').split('\n');
    if (rows.length !== 2 || !rows[0].startsWith('0:') || !rows[1].startsWith('1:')) {
      throw new Error('malformed action reply');
    }
    const meta = JSON.parse(rows[0].slice(2));
    if (meta.a !== '$@1') throw new Error('bad result reference: ' + meta.a);
    return JSON.parse(rows[1].slice(2));
  }

  function appendCard(item) {
    const card = document.createElement('article');
    card.dataset.testid = 'listing-card';
    card.dataset.listingId = item.id;
    card.innerHTML = '<h3></h3><p class="price"></p><p class="room-type"></p>';
    card.querySelector('h3').textContent = item.title;
    card.querySelector('.price').textContent = '$' + item.price + '/mo';
    card.querySelector('.room-type').textContent = item.roomType;
    results.appendChild(card);
  }

  async function loadMore() {
    errBox.hidden = true;
    loadBtn.disabled = true;
    try {
      const res = await fetch('/search' + location.search, {
        method: 'POST',
        headers: {
          'Next-Action': {{.ActionID}},
          'Content-Type': 'text/plain;charset=UTF-8'
        },
        body: JSON.stringify([cursor])
      });
      if (!res.ok) throw new Error('continuation status ' + res.status);
      const batch = parseActionReply(await res.text());
      batch.items.forEach(appendCard);
      cursor = batch.nextCursor;
      loadBtn.hidden = !batch.hasNextPage;
      window.__lastBatch = batch;
    } catch (err) {
      console.error('load more failed:', String(err));
      errBox.hidden = false;
    } finally {
      loadBtn.disabled = false;
    }
  }

  loadBtn.addEventListener('click', loadMore);
  retryBtn.addEventListener('click', loadMore);

  fetch('/api/search' + location.search)
    .then(function (res) { return res.json(); })
    .then(function (data) {
      document.querySelector('[data-testid=map-mode]').textContent = data.meta.mode;
      const count = data.map.pins ? data.map.pins.length : data.map.geojson.features.length;
      document.querySelector('[data-testid=map-pin-count]').textContent = String(count);
      window.__searchMeta = data.meta;
    })
    .catch(function (err) { console.error('search api failed:', String(err)); });
})();
</script>
</body>
</html>
`
