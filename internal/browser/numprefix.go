package browser

import "strconv"

// maxNumBufDigits caps the numeric prefix so a runaway repeat doesn't
// grow the buffer without bound; older digits are dropped, not the
// command.
const maxNumBufDigits = 6

// PushDigit accumulates d (0-9) into the pending numeric prefix. A
// leading zero on an otherwise empty buffer is suppressed.
func (c *Controller) PushDigit(d int) {
	if c.numbuf == "" && d == 0 {
		return
	}
	c.numbuf += strconv.Itoa(d)
	if len(c.numbuf) > maxNumBufDigits {
		c.numbuf = c.numbuf[len(c.numbuf)-maxNumBufDigits:]
	}
}

// getNum parses the pending numeric prefix, defaulting to 1 when empty.
// It does not clear the buffer; Command clears it once per dispatch.
func (c *Controller) getNum() int {
	if c.numbuf == "" {
		return 1
	}
	n, err := strconv.Atoi(c.numbuf)
	if err != nil || n == 0 {
		return 1
	}
	return n
}

// ClearNum drops the pending numeric prefix.
func (c *Controller) ClearNum() { c.numbuf = "" }
