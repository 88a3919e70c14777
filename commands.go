// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ssdbclient

import (
	"context"

	"github.com/go-ssdb/ssdbclient/wire"
)

// The methods below are thin wrappers over ExecuteCommand: one per SSDB
// command, each asserting the result to its response class's concrete
// Go type. None of them add behavior beyond that assertion — the class
// table in package wire is the single source of truth for what shape a
// given command returns.

func asInt(v any, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	n, _ := v.(int64)
	return n, nil
}

func asFloat(v any, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	f, _ := v.(float64)
	return f, nil
}

func asBytes(v any, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	b, _ := v.([]byte)
	return b, nil
}

func asList(v any, err error) ([][]byte, error) {
	if err != nil {
		return nil, err
	}
	l, _ := v.([][]byte)
	return l, nil
}

func asStrMap(v any, err error) ([]wire.KV, error) {
	if err != nil {
		return nil, err
	}
	m, _ := v.([]wire.KV)
	return m, nil
}

func asIntMap(v any, err error) ([]wire.IntKV, error) {
	if err != nil {
		return nil, err
	}
	m, _ := v.([]wire.IntKV)
	return m, nil
}

func asScan(v any, err error) (wire.ScanResult, error) {
	if err != nil {
		return wire.ScanResult{}, err
	}
	s, _ := v.(wire.ScanResult)
	return s, nil
}

// --- NO_RESPONSE -----------------------------------------------------

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ExecuteCommand(ctx, "ping")
	return err
}

func (c *Client) Qset(ctx context.Context, name string, value any) error {
	_, err := c.ExecuteCommand(ctx, "qset", name, value)
	return err
}

// --- INT ---------------------------------------------------------------

func (c *Client) Auth(ctx context.Context, password string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "auth", password))
}

func (c *Client) DBSize(ctx context.Context) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "dbsize"))
}

func (c *Client) Set(ctx context.Context, key string, value any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "set", key, value))
}

func (c *Client) SetX(ctx context.Context, key string, value any, ttlSeconds int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "setx", key, value, ttlSeconds))
}

func (c *Client) SetNX(ctx context.Context, key string, value any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "setnx", key, value))
}

func (c *Client) Expire(ctx context.Context, key string, ttlSeconds int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "expire", key, ttlSeconds))
}

func (c *Client) TTL(ctx context.Context, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "ttl", key))
}

func (c *Client) Del(ctx context.Context, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "del", key))
}

func (c *Client) Incr(ctx context.Context, key string, by int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "incr", key, by))
}

func (c *Client) Decr(ctx context.Context, key string, by int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "decr", key, by))
}

func (c *Client) Exists(ctx context.Context, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "exists", key))
}

func (c *Client) GetBit(ctx context.Context, key string, offset int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "getbit", key, offset))
}

func (c *Client) SetBit(ctx context.Context, key string, offset int64, bit int) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "setbit", key, offset, bit))
}

func (c *Client) BitCount(ctx context.Context, key string, start, end int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "bitcount", key, start, end))
}

func (c *Client) CountBit(ctx context.Context, key string, start, size int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "countbit", key, start, size))
}

func (c *Client) Strlen(ctx context.Context, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "strlen", key))
}

func (c *Client) MultiSet(ctx context.Context, kvs ...any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "multi_set", kvs...))
}

func (c *Client) MultiDel(ctx context.Context, keys ...any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "multi_del", keys...))
}

func (c *Client) HSet(ctx context.Context, name, key string, value any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hset", name, key, value))
}

func (c *Client) HDel(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hdel", name, key))
}

func (c *Client) HIncr(ctx context.Context, name, key string, by int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hincr", name, key, by))
}

func (c *Client) HDecr(ctx context.Context, name, key string, by int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hdecr", name, key, by))
}

func (c *Client) HExists(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hexists", name, key))
}

func (c *Client) HSize(ctx context.Context, name string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hsize", name))
}

func (c *Client) HClear(ctx context.Context, name string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "hclear", name))
}

func (c *Client) MultiHSet(ctx context.Context, name string, kvs ...any) (int64, error) {
	args := append([]any{name}, kvs...)
	return asInt(c.ExecuteCommand(ctx, "multi_hset", args...))
}

func (c *Client) MultiHDel(ctx context.Context, name string, keys ...any) (int64, error) {
	args := append([]any{name}, keys...)
	return asInt(c.ExecuteCommand(ctx, "multi_hdel", args...))
}

func (c *Client) ZSet(ctx context.Context, name, key string, score int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zset", name, key, score))
}

func (c *Client) ZGet(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zget", name, key))
}

func (c *Client) ZDel(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zdel", name, key))
}

func (c *Client) ZIncr(ctx context.Context, name, key string, by int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zincr", name, key, by))
}

func (c *Client) ZDecr(ctx context.Context, name, key string, by int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zdecr", name, key, by))
}

func (c *Client) ZExists(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zexists", name, key))
}

func (c *Client) ZSize(ctx context.Context, name string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zsize", name))
}

func (c *Client) ZRank(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zrank", name, key))
}

func (c *Client) ZRRank(ctx context.Context, name, key string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zrrank", name, key))
}

func (c *Client) ZClear(ctx context.Context, name string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zclear", name))
}

func (c *Client) ZCount(ctx context.Context, name string, start, end int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zcount", name, start, end))
}

func (c *Client) ZSum(ctx context.Context, name string, start, end int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zsum", name, start, end))
}

func (c *Client) ZRemRangeByRank(ctx context.Context, name string, start, end int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zremrangebyrank", name, start, end))
}

func (c *Client) ZRemRangeByScore(ctx context.Context, name string, start, end int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "zremrangebyscore", name, start, end))
}

func (c *Client) MultiZSet(ctx context.Context, name string, kvs ...any) (int64, error) {
	args := append([]any{name}, kvs...)
	return asInt(c.ExecuteCommand(ctx, "multi_zset", args...))
}

func (c *Client) MultiZDel(ctx context.Context, name string, keys ...any) (int64, error) {
	args := append([]any{name}, keys...)
	return asInt(c.ExecuteCommand(ctx, "multi_zdel", args...))
}

func (c *Client) QSize(ctx context.Context, name string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qsize", name))
}

func (c *Client) QClear(ctx context.Context, name string) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qclear", name))
}

func (c *Client) QPush(ctx context.Context, name string, item any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qpush", name, item))
}

func (c *Client) QPushFront(ctx context.Context, name string, item any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qpush_front", name, item))
}

func (c *Client) QPushBack(ctx context.Context, name string, item any) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qpush_back", name, item))
}

func (c *Client) QTrimFront(ctx context.Context, name string, size int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qtrim_front", name, size))
}

func (c *Client) QTrimBack(ctx context.Context, name string, size int64) (int64, error) {
	return asInt(c.ExecuteCommand(ctx, "qtrim_back", name, size))
}

// --- FLOAT ---------------------------------------------------------------

func (c *Client) ZAvg(ctx context.Context, name string, start, end int64) (float64, error) {
	return asFloat(c.ExecuteCommand(ctx, "zavg", name, start, end))
}

// --- BYTES ---------------------------------------------------------------

func (c *Client) Version(ctx context.Context) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "version"))
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "get", key))
}

func (c *Client) GetSet(ctx context.Context, key string, value any) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "getset", key, value))
}

func (c *Client) Substr(ctx context.Context, key string, start, size int64) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "substr", key, start, size))
}

func (c *Client) HGet(ctx context.Context, name, key string) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "hget", name, key))
}

func (c *Client) QFront(ctx context.Context, name string) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "qfront", name))
}

func (c *Client) QBack(ctx context.Context, name string) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "qback", name))
}

func (c *Client) QGet(ctx context.Context, name string, index int64) ([]byte, error) {
	return asBytes(c.ExecuteCommand(ctx, "qget", name, index))
}

// --- LIST ---------------------------------------------------------------

func (c *Client) Info(ctx context.Context) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "info"))
}

func (c *Client) Keys(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "keys", start, end, limit))
}

func (c *Client) RKeys(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "rkeys", start, end, limit))
}

func (c *Client) HList(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "hlist", start, end, limit))
}

func (c *Client) HRList(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "hrlist", start, end, limit))
}

func (c *Client) HKeys(ctx context.Context, name, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "hkeys", name, start, end, limit))
}

func (c *Client) ZList(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "zlist", start, end, limit))
}

func (c *Client) ZRList(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "zrlist", start, end, limit))
}

func (c *Client) ZKeys(ctx context.Context, name, start string, startScore, endScore, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "zkeys", name, start, startScore, endScore, limit))
}

func (c *Client) QList(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qlist", start, end, limit))
}

func (c *Client) QRList(ctx context.Context, start, end string, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qrlist", start, end, limit))
}

func (c *Client) QRange(ctx context.Context, name string, offset, limit int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qrange", name, offset, limit))
}

func (c *Client) QSlice(ctx context.Context, name string, begin, end int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qslice", name, begin, end))
}

func (c *Client) QPop(ctx context.Context, name string, size int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qpop", name, size))
}

func (c *Client) QPopFront(ctx context.Context, name string, size int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qpop_front", name, size))
}

func (c *Client) QPopBack(ctx context.Context, name string, size int64) ([][]byte, error) {
	return asList(c.ExecuteCommand(ctx, "qpop_back", name, size))
}

// --- STR_MAP ---------------------------------------------------------------

func (c *Client) MultiGet(ctx context.Context, keys ...any) ([]wire.KV, error) {
	return asStrMap(c.ExecuteCommand(ctx, "multi_get", keys...))
}

func (c *Client) HGetAll(ctx context.Context, name string) ([]wire.KV, error) {
	return asStrMap(c.ExecuteCommand(ctx, "hgetall", name))
}

func (c *Client) MultiHGet(ctx context.Context, name string, keys ...any) ([]wire.KV, error) {
	args := append([]any{name}, keys...)
	return asStrMap(c.ExecuteCommand(ctx, "multi_hget", args...))
}

// --- INT_MAP ---------------------------------------------------------------

func (c *Client) MultiExists(ctx context.Context, keys ...any) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "multi_exists", keys...))
}

func (c *Client) MultiHExists(ctx context.Context, name string, keys ...any) ([]wire.IntKV, error) {
	args := append([]any{name}, keys...)
	return asIntMap(c.ExecuteCommand(ctx, "multi_hexists", args...))
}

func (c *Client) MultiHSize(ctx context.Context, names ...any) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "multi_hsize", names...))
}

func (c *Client) ZRange(ctx context.Context, name string, offset, limit int64) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "zrange", name, offset, limit))
}

func (c *Client) ZRRange(ctx context.Context, name string, offset, limit int64) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "zrrange", name, offset, limit))
}

func (c *Client) ZPopFront(ctx context.Context, name string, limit int64) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "zpop_front", name, limit))
}

func (c *Client) ZPopBack(ctx context.Context, name string, limit int64) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "zpop_back", name, limit))
}

func (c *Client) MultiZGet(ctx context.Context, name string, keys ...any) ([]wire.IntKV, error) {
	args := append([]any{name}, keys...)
	return asIntMap(c.ExecuteCommand(ctx, "multi_zget", args...))
}

func (c *Client) MultiZExists(ctx context.Context, name string, keys ...any) ([]wire.IntKV, error) {
	args := append([]any{name}, keys...)
	return asIntMap(c.ExecuteCommand(ctx, "multi_zexists", args...))
}

func (c *Client) MultiZSize(ctx context.Context, names ...any) ([]wire.IntKV, error) {
	return asIntMap(c.ExecuteCommand(ctx, "multi_zsize", names...))
}

// --- STR_MAP_SCAN / INT_MAP_SCAN --------------------------------------

func (c *Client) Scan(ctx context.Context, start, end string, limit int64) (wire.ScanResult, error) {
	return asScan(c.ExecuteCommand(ctx, "scan", start, end, limit))
}

func (c *Client) RScan(ctx context.Context, start, end string, limit int64) (wire.ScanResult, error) {
	return asScan(c.ExecuteCommand(ctx, "rscan", start, end, limit))
}

func (c *Client) HScan(ctx context.Context, name, start, end string, limit int64) (wire.ScanResult, error) {
	return asScan(c.ExecuteCommand(ctx, "hscan", name, start, end, limit))
}

func (c *Client) HRScan(ctx context.Context, name, start, end string, limit int64) (wire.ScanResult, error) {
	return asScan(c.ExecuteCommand(ctx, "hrscan", name, start, end, limit))
}

func (c *Client) ZScan(ctx context.Context, name, start string, startScore, endScore, limit int64) (wire.ScanResult, error) {
	return asScan(c.ExecuteCommand(ctx, "zscan", name, start, startScore, endScore, limit))
}

func (c *Client) ZRScan(ctx context.Context, name, start string, startScore, endScore, limit int64) (wire.ScanResult, error) {
	return asScan(c.ExecuteCommand(ctx, "zrscan", name, start, startScore, endScore, limit))
}
