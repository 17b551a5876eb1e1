package tele

// Go side of tele.proto. Struct tags follow protoc-gen-go layout,
// keep field numbers in sync with tele.proto.

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

type Telemetry struct {
	VmId         int32                  `protobuf:"varint,1,opt,name=vm_id,json=vmId,proto3" json:"vm_id,omitempty"`
	Time         int64                  `protobuf:"varint,2,opt,name=time,proto3" json:"time,omitempty"`
	Error        *Telemetry_Error       `protobuf:"bytes,3,opt,name=error,proto3" json:"error,omitempty"`
	Transaction  *Telemetry_Transaction `protobuf:"bytes,4,opt,name=transaction,proto3" json:"transaction,omitempty"`
	Cancel       *Telemetry_Cancel      `protobuf:"bytes,5,opt,name=cancel,proto3" json:"cancel,omitempty"`
	Collect      *Telemetry_Collect     `protobuf:"bytes,6,opt,name=collect,proto3" json:"collect,omitempty"`
	Station      *Telemetry_Station     `protobuf:"bytes,7,opt,name=station,proto3" json:"station,omitempty"`
	Stat         *Telemetry_Stat        `protobuf:"bytes,8,opt,name=stat,proto3" json:"stat,omitempty"`
	BuildVersion string                 `protobuf:"bytes,9,opt,name=build_version,json=buildVersion,proto3" json:"build_version,omitempty"`
}

func (m *Telemetry) Reset()         { *m = Telemetry{} }
func (m *Telemetry) String() string { return proto.CompactTextString(m) }
func (*Telemetry) ProtoMessage()    {}

type Telemetry_Error struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *Telemetry_Error) Reset()         { *m = Telemetry_Error{} }
func (m *Telemetry_Error) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Error) ProtoMessage()    {}

type Telemetry_Transaction struct {
	ReceiptId string            `protobuf:"bytes,1,opt,name=receipt_id,json=receiptId,proto3" json:"receipt_id,omitempty"`
	Minutes   uint32            `protobuf:"varint,2,opt,name=minutes,proto3" json:"minutes,omitempty"`
	Paid      uint32            `protobuf:"varint,3,opt,name=paid,proto3" json:"paid,omitempty"`
	Coins     map[uint32]uint32 `protobuf:"bytes,4,rep,name=coins,proto3" json:"coins,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
	Issued    int64             `protobuf:"varint,5,opt,name=issued,proto3" json:"issued,omitempty"`
}

func (m *Telemetry_Transaction) Reset()         { *m = Telemetry_Transaction{} }
func (m *Telemetry_Transaction) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Transaction) ProtoMessage()    {}

type Telemetry_Cancel struct {
	Returned map[uint32]uint32 `protobuf:"bytes,1,rep,name=returned,proto3" json:"returned,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
	Amount   uint32            `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Idle     bool              `protobuf:"varint,3,opt,name=idle,proto3" json:"idle,omitempty"`
}

func (m *Telemetry_Cancel) Reset()         { *m = Telemetry_Cancel{} }
func (m *Telemetry_Cancel) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Cancel) ProtoMessage()    {}

type Telemetry_Collect struct {
	Amount uint32 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Telemetry_Collect) Reset()         { *m = Telemetry_Collect{} }
func (m *Telemetry_Collect) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Collect) ProtoMessage()    {}

type Telemetry_Station struct {
	Inserted  uint32 `protobuf:"varint,1,opt,name=inserted,proto3" json:"inserted,omitempty"`
	Display   uint32 `protobuf:"varint,2,opt,name=display,proto3" json:"display,omitempty"`
	Collected uint32 `protobuf:"varint,3,opt,name=collected,proto3" json:"collected,omitempty"`
}

func (m *Telemetry_Station) Reset()         { *m = Telemetry_Station{} }
func (m *Telemetry_Station) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Station) ProtoMessage()    {}

type Telemetry_Stat struct {
	CoinRejected map[uint32]uint32 `protobuf:"bytes,1,rep,name=coin_rejected,json=coinRejected,proto3" json:"coin_rejected,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
}

func (m *Telemetry_Stat) Reset()         { *m = Telemetry_Stat{} }
func (m *Telemetry_Stat) String() string { return proto.CompactTextString(m) }
func (*Telemetry_Stat) ProtoMessage()    {}

type Command_Kind int32

const (
	Command_INVALID Command_Kind = 0
	Command_REPORT  Command_Kind = 1
	Command_EMPTY   Command_Kind = 2
	Command_CANCEL  Command_Kind = 3
)

var Command_Kind_name = map[int32]string{
	0: "INVALID",
	1: "REPORT",
	2: "EMPTY",
	3: "CANCEL",
}

func (x Command_Kind) String() string {
	if s, ok := Command_Kind_name[int32(x)]; ok {
		return s
	}
	return fmt.Sprintf("Command_Kind(%d)", int32(x))
}

type Command struct {
	Id         uint32       `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Kind       Command_Kind `protobuf:"varint,2,opt,name=kind,proto3,enum=tele.Command_Kind" json:"kind,omitempty"`
	ReplyTopic string       `protobuf:"bytes,3,opt,name=reply_topic,json=replyTopic,proto3" json:"reply_topic,omitempty"`
	Deadline   int64        `protobuf:"varint,4,opt,name=deadline,proto3" json:"deadline,omitempty"`
}

func (m *Command) Reset()         { *m = Command{} }
func (m *Command) String() string { return proto.CompactTextString(m) }
func (*Command) ProtoMessage()    {}

type Response struct {
	CommandId uint32            `protobuf:"varint,1,opt,name=command_id,json=commandId,proto3" json:"command_id,omitempty"`
	Error     string            `protobuf:"bytes,2,opt,name=error,proto3" json:"error,omitempty"`
	Amount    uint32            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Returned  map[uint32]uint32 `protobuf:"bytes,4,rep,name=returned,proto3" json:"returned,omitempty" protobuf_key:"varint,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`

	INTERNALTopic string `protobuf:"bytes,2048,opt,name=INTERNAL_topic,json=INTERNALTopic,proto3" json:"INTERNAL_topic,omitempty"`
}

func (m *Response) Reset()         { *m = Response{} }
func (m *Response) String() string { return proto.CompactTextString(m) }
func (*Response) ProtoMessage()    {}
