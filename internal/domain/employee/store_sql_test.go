package employee

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hrpay/internal/apperr"
)

func TestSQLStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee SQL Store Suite")
}

var _ = Describe("SQLStore", func() {
	var (
		db       *gorm.DB
		store    *SQLStore
		statuses *SQLStatusStore
		ctx      context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(Migrate(db)).To(Succeed())

		store = NewSQLStore(db)
		statuses = NewSQLStatusStore(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("ListAll", func() {
		It("returns an empty collection for a fresh table", func() {
			all, err := store.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	Describe("ReplaceAll", func() {
		It("stores records in the given order", func() {
			records := sampleEmployees()
			records[0], records[1] = records[1], records[0]
			Expect(store.ReplaceAll(ctx, records)).To(Succeed())

			all, err := store.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(Equal(records))
		})

		It("overwrites the previous collection", func() {
			Expect(store.ReplaceAll(ctx, sampleEmployees())).To(Succeed())
			Expect(store.ReplaceAll(ctx, sampleEmployees()[:1])).To(Succeed())

			all, err := store.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].Username).To(Equal("adoyle"))
		})

		It("keeps the old rows when the new set violates a constraint", func() {
			Expect(store.ReplaceAll(ctx, sampleEmployees())).To(Succeed())
			clash := []Employee{{ID: 1, Username: "dup"}, {ID: 2, Username: "dup"}}

			err := store.ReplaceAll(ctx, clash)
			Expect(apperr.IsStorage(err)).To(BeTrue())

			all, err := store.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})
	})

	Describe("lookups", func() {
		BeforeEach(func() {
			Expect(store.ReplaceAll(ctx, sampleEmployees())).To(Succeed())
		})

		It("finds by id and username", func() {
			e, err := store.FindByID(ctx, 10002)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.PendingPromotion).To(BeTrue())
			Expect(e.PreviousJobTitle).To(Equal("Clerk"))

			e, err = store.FindByUsername(ctx, "adoyle")
			Expect(err).NotTo(HaveOccurred())
			Expect(e.ID).To(Equal(10001))
		})

		It("reports unknown keys as not found", func() {
			_, err := store.FindByID(ctx, 42)
			Expect(apperr.IsNotFound(err)).To(BeTrue())
			_, err = store.FindByUsername(ctx, "nobody")
			Expect(apperr.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("SQLStatusStore", func() {
		It("upserts and reads employment kinds", func() {
			Expect(statuses.Set(ctx, "adoyle", KindFullTime)).To(Succeed())
			Expect(statuses.Set(ctx, "adoyle", KindPartTime)).To(Succeed())

			kind, err := statuses.Kind(ctx, "adoyle")
			Expect(err).NotTo(HaveOccurred())
			Expect(kind).To(Equal(KindPartTime))

			all, err := statuses.All(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveKeyWithValue("adoyle", KindPartTime))

			_, err = statuses.Kind(ctx, "ghost")
			Expect(apperr.IsNotFound(err)).To(BeTrue())
		})
	})
})
