package memory_test

import (
	"context"
	"testing"

	"github.com/Ahmed-Sermani/bucketrank/store"
	memstore "github.com/Ahmed-Sermani/bucketrank/store/memory"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(InMemoryStoreTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type InMemoryStoreTestSuite struct{}

func (s *InMemoryStoreTestSuite) TestPutAndFetch(c *gc.C) {
	st := memstore.NewInMemoryStore()
	st.Put("pages/0.html", []byte("hello"))

	content, err := st.Fetch(context.Background(), "pages/0.html")
	c.Assert(err, gc.IsNil)
	c.Assert(string(content), gc.Equals, "hello")

	// Mutating the returned slice must not affect the stored object.
	content[0] = 'X'
	content, err = st.Fetch(context.Background(), "pages/0.html")
	c.Assert(err, gc.IsNil)
	c.Assert(string(content), gc.Equals, "hello")
}

func (s *InMemoryStoreTestSuite) TestFetchMissingObject(c *gc.C) {
	st := memstore.NewInMemoryStore()

	_, err := st.Fetch(context.Background(), "pages/404.html")
	c.Assert(xerrors.Is(err, store.ErrNotFound), gc.Equals, true)
}

func (s *InMemoryStoreTestSuite) TestListFiltersAndSorts(c *gc.C) {
	st := memstore.NewInMemoryStore()
	st.Put("pages/1.html", nil)
	st.Put("pages/0.html", nil)
	st.Put("logs/run.log", nil)

	names, err := st.List(context.Background(), "pages/")
	c.Assert(err, gc.IsNil)
	c.Assert(names, gc.DeepEquals, []string{"pages/0.html", "pages/1.html"})
}
