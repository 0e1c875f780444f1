package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/courtsideco/courtside/pkg/a2a"
	"github.com/courtsideco/courtside/pkg/storage"
	"github.com/courtsideco/courtside/pkg/storage/postgres"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("COURTSIDE_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("COURTSIDE_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Driver", func() {
	var (
		driver *postgres.Driver
		ctx    context.Context
		ids    []string
	)

	// newID registers a fresh context id for cleanup so runs stay isolated
	// on a shared database.
	newID := func() string {
		id := uuid.NewString()
		ids = append(ids, id)
		return id
	}

	userMsg := func(text string) a2a.Message {
		return a2a.NewTextMessage(a2a.RoleUser, text)
	}

	BeforeEach(func() {
		ctx = context.Background()
		ids = nil

		var err error
		driver, err = postgres.NewDriver(ctx, connStr())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver == nil {
			return
		}
		for _, id := range ids {
			driver.Delete(ctx, id)
		}
		driver.Close()
	})

	Describe("NewDriver", func() {
		It("returns an error for an unreachable database", func() {
			_, err := postgres.NewDriver(context.Background(),
				"host=invalid port=9999 user=bad dbname=bad sslmode=disable connect_timeout=1")
			Expect(err).To(HaveOccurred())
			fmt.Fprintf(GinkgoWriter, "expected error: %v\n", err)
		})
	})

	Describe("Put and Get", func() {
		It("round-trips a context with history and metadata", func() {
			id := newID()
			c := &storage.Context{
				ID:       id,
				History:  []a2a.Message{userMsg("hello"), userMsg("again")},
				Metadata: map[string]string{"channel_id": "chan-9"},
			}
			Expect(driver.Put(ctx, c)).To(Succeed())

			got, err := driver.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(id))
			Expect(got.History).To(HaveLen(2))
			Expect(got.History[0].Text()).To(Equal("hello"))
			Expect(got.Metadata).To(HaveKeyWithValue("channel_id", "chan-9"))
		})

		It("replaces an existing context on Put", func() {
			id := newID()
			Expect(driver.Put(ctx, &storage.Context{ID: id, History: []a2a.Message{userMsg("v1")}})).To(Succeed())
			Expect(driver.Put(ctx, &storage.Context{ID: id, History: []a2a.Message{userMsg("v2")}})).To(Succeed())

			got, err := driver.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.History).To(HaveLen(1))
			Expect(got.History[0].Text()).To(Equal("v2"))
		})

		It("returns ErrNotFound for a missing id", func() {
			_, err := driver.Get(ctx, "missing-"+uuid.NewString())

			var notFound storage.ErrNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})

	Describe("AppendMessage", func() {
		It("creates the context on first use", func() {
			id := newID()
			Expect(driver.AppendMessage(ctx, id, userMsg("hi"))).To(Succeed())

			has, err := driver.Has(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeTrue())
		})

		It("appends in order through the jsonb concat", func() {
			id := newID()
			Expect(driver.AppendMessage(ctx, id, userMsg("first"))).To(Succeed())
			Expect(driver.AppendMessage(ctx, id, userMsg("second"))).To(Succeed())
			Expect(driver.AppendMessage(ctx, id, userMsg("third"))).To(Succeed())

			got, err := driver.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.History).To(HaveLen(3))
			Expect(got.History[0].Text()).To(Equal("first"))
			Expect(got.History[2].Text()).To(Equal("third"))
		})

		It("loses no turns under concurrent appends", func() {
			id := newID()

			const writers = 8
			var wg sync.WaitGroup
			wg.Add(writers)
			for i := 0; i < writers; i++ {
				go func(n int) {
					defer GinkgoRecover()
					defer wg.Done()
					Expect(driver.AppendMessage(ctx, id, userMsg(fmt.Sprintf("turn-%d", n)))).To(Succeed())
				}(i)
			}
			wg.Wait()

			got, err := driver.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.History).To(HaveLen(writers))
		})
	})

	Describe("List", func() {
		It("includes stored context ids", func() {
			id := newID()
			Expect(driver.AppendMessage(ctx, id, userMsg("x"))).To(Succeed())

			listed, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(ContainElement(id))
		})
	})

	Describe("Clear", func() {
		It("empties the history but keeps the row", func() {
			id := newID()
			Expect(driver.AppendMessage(ctx, id, userMsg("x"))).To(Succeed())
			Expect(driver.Clear(ctx, id)).To(Succeed())

			got, err := driver.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.History).To(BeEmpty())
		})

		It("returns ErrNotFound for a missing context", func() {
			var notFound storage.ErrNotFound
			Expect(errors.As(driver.Clear(ctx, "missing-"+uuid.NewString()), &notFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("removes the context", func() {
			id := newID()
			Expect(driver.AppendMessage(ctx, id, userMsg("x"))).To(Succeed())
			Expect(driver.Delete(ctx, id)).To(Succeed())

			has, err := driver.Has(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeFalse())
		})

		It("returns ErrNotFound for a missing context", func() {
			var notFound storage.ErrNotFound
			Expect(errors.As(driver.Delete(ctx, "missing-"+uuid.NewString()), &notFound)).To(BeTrue())
		})
	})

	Describe("DeleteExpired", func() {
		It("removes contexts updated before the cutoff", func() {
			id := newID()
			Expect(driver.AppendMessage(ctx, id, userMsg("old"))).To(Succeed())

			removed, err := driver.DeleteExpired(ctx, time.Now().Add(time.Minute))
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeNumerically(">=", 1))

			has, err := driver.Has(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeFalse())
		})
	})
})
