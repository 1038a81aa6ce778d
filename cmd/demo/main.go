// Command demo runs the key-value chain extension against an
// in-memory execution context and a plain byte-slice guest memory,
// showing the three calling conventions end to end.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/shamaton/msgpack/v2"

	"github.com/mn13/chainext"
	"github.com/mn13/chainext/examples/kvextension"
)

const (
	inputPtr  = 0x1000
	outputPtr = 0x2000
	outLenPtr = 0x2800
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ext := kvextension.Extension{}
	meter := chainext.NewGasMeter(100_000)
	mem := chainext.SliceMemory(make([]byte, 0x3000))
	execCtx := chainext.NewKVContext(dbm.NewMemDB(), []byte("alice"))

	// OnlyIn: negotiate the extension version
	outcome, err := chainext.HostCall(ext, meter, mem, execCtx,
		kvextension.FuncVersion, 1, 0, 0, 0)
	if err != nil {
		return err
	}
	fmt.Printf("version: %d\n", outcome.Value)

	// PrimInBufOut: fetch the caller identity
	binary.LittleEndian.PutUint32(mem[outLenPtr:], 64)
	outcome, err = chainext.HostCall(ext, meter, mem, execCtx,
		kvextension.FuncCallerID, 64, 0, outputPtr, outLenPtr)
	if err != nil {
		return err
	}
	fmt.Printf("caller: %s\n", mem[outputPtr:outputPtr+outcome.Value])

	// BufInBufOut: store a value and read back the previous one
	request, err := msgpack.Marshal(kvextension.StoreRequest{
		Key:   []byte("greeting"),
		Value: []byte("hello"),
	})
	if err != nil {
		return err
	}
	copy(mem[inputPtr:], request)
	binary.LittleEndian.PutUint32(mem[outLenPtr:], 256)
	if _, err = chainext.HostCall(ext, meter, mem, execCtx,
		kvextension.FuncStore, inputPtr, uint32(len(request)), outputPtr, outLenPtr); err != nil {
		return err
	}
	replyLen := binary.LittleEndian.Uint32(mem[outLenPtr:])
	var reply kvextension.StoreReply
	if err := msgpack.Unmarshal(mem[outputPtr:outputPtr+replyLen], &reply); err != nil {
		return err
	}
	fmt.Printf("stored %q, previous value: %q\n", "hello", reply.Previous)

	// OnlyIn diverging: an unsupported version aborts the invocation
	outcome, err = chainext.HostCall(ext, meter, mem, execCtx,
		kvextension.FuncVersion, 42, 0, 0, 0)
	if err != nil {
		return err
	}
	if outcome.Terminated != nil {
		fmt.Printf("terminated: reverted=%v data=%q\n",
			outcome.Terminated.DidRevert(), outcome.Terminated.Data)
	}

	fmt.Printf("gas remaining: %d\n", meter.Remaining())
	return nil
}
