package cos_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/byte-engine/engine/cmn/cos"
)

var _ = Describe("ErrKind", func() {
	It("tags the kind and is recoverable via cos.Is", func() {
		err := cos.ErrNotFound("resource %q", "gun.wav")
		Expect(cos.Is(err, cos.KindNotFound)).To(BeTrue())
		Expect(cos.Is(err, cos.KindStorageError)).To(BeFalse())
	})

	It("wraps an underlying cause without losing it", func() {
		cause := errors.New("disk full")
		err := cos.ErrStorageError(cause, "writing %q", "key")
		Expect(errors.Unwrap(err)).To(Equal(cause))
	})
})

var _ = Describe("Errs", func() {
	It("dedupes identical errors and counts distinct ones", func() {
		var errs cos.Errs
		errs.Add(cos.ErrNotFound("a"))
		errs.Add(cos.ErrNotFound("a"))
		errs.Add(cos.ErrNotFound("b"))
		Expect(errs.Cnt()).To(Equal(2))
	})
})
