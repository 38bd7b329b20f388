package options

// USB15Size is the MSR length for the usb15 protocol family. The USB
// bootloader variant shares its option-byte layout with STC15 — the ISP
// connection differs (CDC-ACM rather than UART) but the MSR trailer is
// identical, so it reuses the STC15 descriptor table verbatim.
const USB15Size = Family15Size

// USB15Descriptors describes the usb15 option bytes. It is the STC15
// table unchanged.
func USB15Descriptors() []Descriptor {
	return Family15Descriptors()
}
