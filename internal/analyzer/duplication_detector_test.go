package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triplicatedPipeline = `def load_users(path):
    raw = read_file(path)
    parsed = parse_rows(raw)
    cleaned = strip_empty(parsed)
    store(cleaned, path)

def load_orders(src):
    data = read_file(src)
    rows = parse_rows(data)
    ready = strip_empty(rows)
    store(ready, src)

def load_items(fname):
    blob = read_file(fname)
    entries = parse_rows(blob)
    final = strip_empty(entries)
    store(final, fname)
`

func TestDuplicationDetector_FindsRenamedTriplicate(t *testing.T) {
	root := parseModule(t, triplicatedPipeline)
	detector := NewDuplicationDetector(nil)

	selections := detector.Detect(root)
	require.Len(t, selections, 1, "one pattern, one finding")

	sel := selections[0]
	assert.Equal(t, 3, sel.Count)
	assert.Equal(t, LineRange{2, 5}, sel.Primary)
	assert.Equal(t, []LineRange{{2, 5}, {8, 11}, {14, 17}}, sel.Matches)
}

func TestDuplicationDetector_LongestWindowWins(t *testing.T) {
	root := parseModule(t, triplicatedPipeline)
	selections := NewDuplicationDetector(nil).Detect(root)

	// The full four-statement block is reported once; its two- and
	// three-statement sub-windows are shadowed, not reported alongside.
	require.Len(t, selections, 1)
	assert.Equal(t, 4, selections[0].Primary.End-selections[0].Primary.Start+1,
		"the primary occurrence covers the whole block")
}

func TestDuplicationDetector_TwoCopiesNotReported(t *testing.T) {
	source := `def load_users(path):
    raw = read_file(path)
    parsed = parse_rows(raw)
    cleaned = strip_empty(parsed)
    store(cleaned, path)

def load_orders(src):
    data = read_file(src)
    rows = parse_rows(data)
    ready = strip_empty(rows)
    store(ready, src)
`
	root := parseModule(t, source)
	selections := NewDuplicationDetector(nil).Detect(root)
	assert.Empty(t, selections, "two occurrences are below the default floor")
}

func TestDuplicationDetector_ConfigurableOccurrenceFloor(t *testing.T) {
	root := parseModule(t, triplicatedPipeline)

	strict := DefaultDuplicationConfig()
	strict.MinOccurrences = 4
	assert.Empty(t, NewDuplicationDetector(strict).Detect(root))

	lenient := DefaultDuplicationConfig()
	lenient.MinOccurrences = 2
	assert.NotEmpty(t, NewDuplicationDetector(lenient).Detect(root))
}

func TestDuplicationDetector_SelfSimilarRunSuppressed(t *testing.T) {
	source := `def accumulate():
    total = total + step
    total = total + step
    total = total + step
    total = total + step
    total = total + step
`
	root := parseModule(t, source)
	selections := NewDuplicationDetector(nil).Detect(root)
	assert.Empty(t, selections, "a run matching itself at shifted offsets is not duplication")
}

func TestDuplicationDetector_InconsistentRenamingNotGrouped(t *testing.T) {
	source := `def load_users(path):
    raw = read_file(path)
    parsed = parse_rows(raw)
    cleaned = strip_empty(parsed)
    store(cleaned, path)

def load_orders(src):
    data = read_file(src)
    rows = parse_rows(data)
    ready = strip_empty(rows)
    store(ready, src)

def load_items(fname):
    blob = read_file(fname)
    entries = parse_rows(blob)
    final = strip_empty(blob)
    store(blob, blob)
`
	root := parseModule(t, source)
	selections := NewDuplicationDetector(nil).Detect(root)
	assert.Empty(t, selections, "a block with a different reference pattern breaks the group")
}

func TestDuplicationDetector_NestedBlocksScanned(t *testing.T) {
	source := `def sync(queue):
    for job in queue:
        payload = fetch_remote(job)
        checked = verify_payload(payload)
        archive = compress_data(checked)
        upload_archive(archive, job)

def flush(batch):
    if batch:
        body = fetch_remote(batch)
        valid = verify_payload(body)
        packed = compress_data(valid)
        upload_archive(packed, batch)

def mirror(entry):
    while entry:
        item = fetch_remote(entry)
        okay = verify_payload(item)
        bundle = compress_data(okay)
        upload_archive(bundle, entry)
`
	root := parseModule(t, source)
	selections := NewDuplicationDetector(nil).Detect(root)
	require.Len(t, selections, 1, "bodies nested inside for/if/while are compared")
	assert.Equal(t, 3, selections[0].Count)
}

func TestDuplicationDetector_EmptyAndNilInput(t *testing.T) {
	detector := NewDuplicationDetector(nil)
	assert.Empty(t, detector.Detect(nil))
	assert.Empty(t, detector.Detect(parseModule(t, "")))
	assert.Empty(t, detector.Detect(parseModule(t, "x = 1\n")))
}

func TestDuplicationDetector_ClassBodiesNotWindowed(t *testing.T) {
	source := `class UserStore:
    backend = open_backend("users")
    schema = load_schema(backend)
    pool = make_pool(schema)
    register_store(pool, backend)

class OrderStore:
    engine = open_backend("orders")
    layout = load_schema(engine)
    herd = make_pool(layout)
    register_store(herd, engine)

class ItemStore:
    conn = open_backend("items")
    shape = load_schema(conn)
    slab = make_pool(shape)
    register_store(slab, conn)
`
	root := parseModule(t, source)
	selections := NewDuplicationDetector(nil).Detect(root)
	assert.Empty(t, selections, "class-level statement runs are not compared")
}

func TestDuplicationDetector_MethodBodiesInsideClassesScanned(t *testing.T) {
	source := `class UserSync:
    def run(self, queue):
        payload = fetch_remote(queue)
        checked = verify_payload(payload)
        archive = compress_data(checked)
        upload_archive(archive, queue)

class OrderSync:
    def run(self, batch):
        body = fetch_remote(batch)
        valid = verify_payload(body)
        packed = compress_data(valid)
        upload_archive(packed, batch)

class ItemSync:
    def run(self, entry):
        item = fetch_remote(entry)
        okay = verify_payload(item)
        bundle = compress_data(okay)
        upload_archive(bundle, entry)
`
	root := parseModule(t, source)
	selections := NewDuplicationDetector(nil).Detect(root)
	require.Len(t, selections, 1, "methods are still reached through class bodies")
	assert.Equal(t, 3, selections[0].Count)
	assert.Equal(t, LineRange{3, 6}, selections[0].Primary)
}
