package ipc_test

import (
	"errors"
	"fmt"

	"github.com/jedlimke/ipc"
	"github.com/jedlimke/ipc/proto"
)

func ExampleTextCodec() {
	c := ipc.NewTextCodec()

	data, err := c.Encode(ipc.Record{
		Int:   ipc.Some(int32(2)),
		Float: ipc.Some(float32(42.42)),
		Text:  ipc.Some(`pipes | and \slashes`),
		Kind:  ipc.Some(ipc.KindC),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(data))

	rec, err := c.Decode(data)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(rec)
	// Output:
	// 2|42.42|pipes \| and \\slashes|2
	//   Int:    2
	//   Float:  42.419998
	//   String: pipes | and \slashes
	//   Type:   2
}

func ExampleTextCodec_Decode_structure() {
	_, err := ipc.NewTextCodec().Decode([]byte("3|100.0"))
	fmt.Println(errors.Is(err, ipc.ErrStructure))
	// Output: true
}

func ExampleSchemaCodec() {
	c := ipc.Use(proto.New())

	data, err := c.Encode(ipc.Record{Text: ipc.Some("hi")})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("% x\n", data)

	rec, err := c.Decode(data)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(rec)
	// Output:
	// 1a 02 68 69
	//   Int:    Not set
	//   Float:  Not set
	//   String: hi
	//   Type:   Not set
}
